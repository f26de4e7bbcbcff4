// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package schema compiles a validated catalog into JSON Schema definitions.

Emission happens in two steps:

 1. Emitter.Emit lowers every resource type and property type into a
    Definition (an *orderedmap.Map node plus the names used to reference and
    group it). Names are resolved by Resolver.
 2. Assemble routes Definitions into one Document per group and adds the
    custom resource alternative and the "resources" container.

Nothing in this package performs I/O; output is deterministic for a given
catalog and Options.
*/
package schema
