// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package groups_test

import (
	"testing"

	"carvel.dev/cfnschema/pkg/groups"
	"github.com/stretchr/testify/require"
)

func TestGroup_IsIncluded(t *testing.T) {
	spec := groups.Spec{
		Includes: []string{"AWS::EC2.*"},
		Excludes: []string{"AWS::EC2::(Spot|Launch|Instance|Volume|Host).*"},
	}
	networking, err := spec.Compile("networking")
	require.NoError(t, err)

	require.True(t, networking.IsIncluded("AWS::EC2::VPC"))
	require.True(t, networking.IsIncluded("AWS::EC2::Subnet"))
	require.False(t, networking.IsIncluded("AWS::EC2::Host"))
	require.False(t, networking.IsIncluded("AWS::EC2::LaunchTemplate"))
	require.False(t, networking.IsIncluded("AWS::S3::Bucket"))
}

func TestGroup_matches_whole_names_only(t *testing.T) {
	host, err := groups.IncludesOnly("AWS::EC2::Host").Compile("host")
	require.NoError(t, err)

	require.True(t, host.IsIncluded("AWS::EC2::Host"))
	require.False(t, host.IsIncluded("AWS::EC2::HostGroup"))
	require.False(t, host.IsIncluded("Custom::AWS::EC2::Host"))

	alternation, err := groups.IncludesOnly("AWS::SNS::Topic|AWS::SQS::Queue").Compile("messaging")
	require.NoError(t, err)
	require.True(t, alternation.IsIncluded("AWS::SQS::Queue"))
	require.False(t, alternation.IsIncluded("AWS::SNS::TopicPolicy"))
}

func TestGroup_without_includes_matches_nothing(t *testing.T) {
	g, err := groups.ExcludesOnly("AWS::EC2.*").Compile("none")
	require.NoError(t, err)
	require.False(t, g.IsIncluded("AWS::S3::Bucket"))
}

func TestMaterialize(t *testing.T) {
	t.Run("creates the all group when nothing is configured", func(t *testing.T) {
		gs, err := groups.Materialize(nil)
		require.NoError(t, err)
		require.Equal(t, []string{"all"}, gs.Names())

		all, _ := gs.Get("all")
		require.True(t, all.IsIncluded("AWS::S3::Bucket"))
		require.True(t, all.IsIncluded("AWS::S3::Bucket.LifecycleConfiguration"))
		require.True(t, all.IsIncluded("Tag"))
		require.False(t, all.IsIncluded("Alexa::ASK::Skill"))
	})

	t.Run("layers default patterns under every group", func(t *testing.T) {
		specs := map[string]groups.Spec{
			"default":    {Includes: []string{"Tag"}, Excludes: []string{"AWS::EC2::Host"}},
			"networking": groups.IncludesOnly("AWS::EC2.*"),
			"storage":    groups.IncludesOnly("AWS::S3.*"),
		}

		gs, err := groups.Materialize(specs)
		require.NoError(t, err)
		require.Equal(t, []string{"networking", "storage"}, gs.Names())

		networking, _ := gs.Get("networking")
		require.Equal(t, groups.Spec{
			Includes: []string{"AWS::EC2.*", "Tag"},
			Excludes: []string{"AWS::EC2::Host"},
		}, networking.Spec())
		require.True(t, networking.IsIncluded("Tag"))
		require.False(t, networking.IsIncluded("AWS::EC2::Host"))

		storage, _ := gs.Get("storage")
		require.True(t, storage.IsIncluded("Tag"))
		require.False(t, storage.IsIncluded("AWS::EC2::VPC"))

		// input is left untouched
		require.Equal(t, []string{"AWS::EC2.*"}, specs["networking"].Includes)
		require.Contains(t, specs, "default")
	})

	t.Run("uses the tag baseline without a default group", func(t *testing.T) {
		gs, err := groups.Materialize(map[string]groups.Spec{"storage": groups.IncludesOnly("AWS::S3.*")})
		require.NoError(t, err)

		storage, _ := gs.Get("storage")
		require.Equal(t, []string{"AWS::S3.*", "Tag.*"}, storage.Spec().Includes)
	})

	t.Run("only a default group yields all", func(t *testing.T) {
		gs, err := groups.Materialize(map[string]groups.Spec{"default": groups.IncludesOnly("Tag")})
		require.NoError(t, err)
		require.Equal(t, []string{"all"}, gs.Names())
	})

	t.Run("reports invalid patterns", func(t *testing.T) {
		_, err := groups.Materialize(map[string]groups.Spec{"broken": groups.IncludesOnly("AWS::(EC2")})
		require.Error(t, err)
		require.Contains(t, err.Error(), "Compiling pattern 'AWS::(EC2' of group 'broken'")
	})
}
