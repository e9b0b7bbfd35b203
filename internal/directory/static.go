package directory

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

const StaticType = "static"

var _ core.Directory = (*Static)(nil)

// Static is a directory defined inline in the config file.
type Static struct {
	groups map[string][]string
}

type StaticConfig struct {
	Groups map[string][]string `mapstructure:"groups"`
}

func NewStatic(groups map[string][]string) *Static {
	if groups == nil {
		groups = map[string][]string{}
	}
	return &Static{groups: groups}
}

func NewStaticFromConfig(cfg config.ComponentConfig) (*Static, error) {
	var conf StaticConfig
	if err := cfg.Decode(&conf); err != nil {
		return nil, err
	}
	for group := range conf.Groups {
		if group == "" {
			return nil, fmt.Errorf("static directory '%s' contains an empty group name", cfg.Name)
		}
	}
	return NewStatic(conf.Groups), nil
}

func (s *Static) Members(_ context.Context, group string) ([]core.Member, error) {
	usernames := s.groups[group]
	members := make([]core.Member, 0, len(usernames))
	for i, u := range usernames {
		members = append(members, core.Member{Key: strconv.Itoa(i), Value: u})
	}
	return members, nil
}

func (s *Static) Close() error {
	return nil
}
