package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/goccy/go-yaml"
	"github.com/viant/dynajson"
)

// yamlCommand prints a JSON file as YAML with member order kept.
type yamlCommand struct {
	*settings
	file *string
}

func (cmd *yamlCommand) run(_ *kingpin.ParseContext) error {
	v, _, err := cmd.parseFile(*cmd.file)
	if err != nil {
		return fmt.Errorf("%s: %w", *cmd.file, err)
	}
	loose, err := dynajson.Convert[any](&v, cmd.options()...)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(toYAML(loose))
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = cmd.stdout.Write(data)
	return err
}

// fromYAMLCommand prints a YAML file as JSON.
type fromYAMLCommand struct {
	*settings
	file *string
}

func (cmd *fromYAMLCommand) run(_ *kingpin.ParseContext) error {
	data, err := os.ReadFile(*cmd.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("failed to decode yaml: %w", err)
	}
	if err := dynajson.MarshalTo(cmd.stdout, fromYAML(doc), cmd.options()...); err != nil {
		return err
	}
	fmt.Fprintln(cmd.stdout)
	return nil
}

// toYAML maps the loose mirror onto ordered yaml maps. Nesting is already
// bounded by the parser depth limit.
func toYAML(v any) any {
	switch actual := v.(type) {
	case dynajson.Object:
		ret := make(yaml.MapSlice, len(actual))
		for i, m := range actual {
			ret[i] = yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)}
		}
		return ret
	case []any:
		ret := make([]any, len(actual))
		for i, item := range actual {
			ret[i] = toYAML(item)
		}
		return ret
	}
	return v
}

func fromYAML(v any) any {
	switch actual := v.(type) {
	case yaml.MapSlice:
		ret := make(dynajson.Object, len(actual))
		for i, item := range actual {
			ret[i] = dynajson.Member{Key: fmt.Sprint(item.Key), Value: fromYAML(item.Value)}
		}
		return ret
	case map[string]any:
		ret := make(map[string]any, len(actual))
		for k, item := range actual {
			ret[k] = fromYAML(item)
		}
		return ret
	case []any:
		ret := make([]any, len(actual))
		for i, item := range actual {
			ret[i] = fromYAML(item)
		}
		return ret
	}
	return v
}
