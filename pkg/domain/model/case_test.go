package model_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
)

func TestCreateCaseInputValidate(t *testing.T) {
	valid := func() model.CreateCaseInput {
		return model.CreateCaseInput{
			Title:     "MENA Narrative Pulse",
			Query:     "regional misinformation wave",
			Platforms: []types.Platform{types.PlatformX, types.PlatformWeb},
		}
	}

	t.Run("valid input", func(t *testing.T) {
		in := valid()
		gt.NoError(t, in.Validate())
	})

	t.Run("title too short", func(t *testing.T) {
		in := valid()
		in.Title = "abcd"
		gt.Error(t, in.Validate())
	})

	t.Run("title too long", func(t *testing.T) {
		in := valid()
		in.Title = strings.Repeat("a", 141)
		gt.Error(t, in.Validate())
	})

	t.Run("query too short", func(t *testing.T) {
		in := valid()
		in.Query = "q"
		gt.Error(t, in.Validate())
	})

	t.Run("empty platform set", func(t *testing.T) {
		in := valid()
		in.Platforms = nil
		gt.Error(t, in.Validate())
	})

	t.Run("unknown platform", func(t *testing.T) {
		in := valid()
		in.Platforms = []types.Platform{"facebook"}
		gt.Error(t, in.Validate())
	})

	t.Run("duplicate platform", func(t *testing.T) {
		in := valid()
		in.Platforms = []types.Platform{types.PlatformX, types.PlatformX}
		gt.Error(t, in.Validate())
	})
}
