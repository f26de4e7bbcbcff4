// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: Apache-2.0

package files

// UI is the subset of ui.UI needed to report written files.
type UI interface {
	Printf(string, ...interface{})
}
