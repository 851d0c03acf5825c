package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

// configSource is one parsed layer of configuration.
type configSource struct {
	name string
	cfg  *StructuredConfig
}

// configBuilder collects configuration layers in priority order. Parse
// errors are accumulated and reported by build, each tagged with its source.
type configBuilder struct {
	sources []configSource
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		sources: make([]configSource, 0, 3),
	}
}

// build merges the layers so that non-zero fields of later layers win, then
// validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, src := range b.sources {
		if err := mergo.Merge(merged, src.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", src.name, err)
		}
	}

	return merged, merged.validate()
}

func (b *configBuilder) add(name string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", name, err))
		return b
	}
	b.sources = append(b.sources, configSource{name: name, cfg: cfg})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	return b.add("env", envCfg, parseEnv(envCfg))
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.withArgs(os.Args[1:])
}

func (b *configBuilder) withArgs(args []string) *configBuilder {
	flags, err := parseFlags(args)
	return b.add("flags", flags, err)
}

// withJSON adds the JSON file named by the last earlier layer that set
// JSONFilePath. Without such a layer it is a no-op.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, src := range b.sources {
		if src.cfg.JSONFilePath != "" {
			jsonPath = src.cfg.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	return b.add("json "+jsonPath, jsonCfg, err)
}
