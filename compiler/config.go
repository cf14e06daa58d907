package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/umlgql/compiler/gen"
)

// DefaultConfigFile is the preferences file looked up next to the model.
const DefaultConfigFile = "umlgql.yaml"

// FileConfig is the content of a preferences file. Unset keys keep the
// defaults.
//
//	doc: true
//	indentSpaces: 2
//	useTab: false
//	debug: false
//	metadata: true
//	output: ./graph/
//	element: Model::Domain
//	gqlgen: ./gqlgen.yml
//	workers: 4
type FileConfig struct {
	Doc          *bool  `yaml:"doc,omitempty"`
	IndentSpaces *int   `yaml:"indentSpaces,omitempty"`
	UseTab       *bool  `yaml:"useTab,omitempty"`
	Debug        *bool  `yaml:"debug,omitempty"`
	Metadata     *bool  `yaml:"metadata,omitempty"`
	Output       string `yaml:"output,omitempty"`
	Element      string `yaml:"element,omitempty"`
	GQLGen       string `yaml:"gqlgen,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
}

// LoadConfigFile reads a preferences file. A missing file yields an empty
// configuration when optional is set.
func LoadConfigFile(path string, optional bool) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return &FileConfig{}, nil
		}
		return nil, gen.NewConfigError("file", path, err.Error())
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, gen.NewConfigError("file", path, fmt.Sprintf("parse: %v", err))
	}
	return fc, nil
}

// GenOptions converts the file settings into generator options.
func (fc *FileConfig) GenOptions() []gen.Option {
	var opts []gen.Option
	if fc.Doc != nil {
		opts = append(opts, gen.WithDocumentation(*fc.Doc))
	}
	if fc.IndentSpaces != nil {
		opts = append(opts, gen.WithIndentSpaces(*fc.IndentSpaces))
	}
	if fc.UseTab != nil {
		opts = append(opts, gen.WithTabs(*fc.UseTab))
	}
	if fc.Debug != nil {
		opts = append(opts, gen.WithDebug(*fc.Debug))
	}
	if fc.Metadata != nil {
		opts = append(opts, gen.WithMetadata(*fc.Metadata))
	}
	return opts
}

// Options converts the file settings into run options.
func (fc *FileConfig) Options() []Option {
	var opts []Option
	if fc.Output != "" {
		opts = append(opts, Output(fc.Output))
	}
	if fc.Element != "" {
		opts = append(opts, Element(fc.Element))
	}
	if fc.Workers != 0 {
		opts = append(opts, Workers(fc.Workers))
	}
	return opts
}
