package transcoders

import (
	"gopkg.in/yaml.v2"
)

// yaml.v2 unmarshals mappings as map[interface{}]interface{}. The content value
// model is string-keyed, so decoded trees are rewritten before they leave the
// transcoder.
func normalizeYAMLValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(typed))
		for key, element := range typed {
			keyString, ok := key.(string)
			if !ok {
				// Non-string scalar keys (numbers, bools) are rendered the way
				// yaml would render them.
				keyBytes, _ := yaml.Marshal(key)
				keyString = string(keyBytes)
				if len(keyString) > 0 && keyString[len(keyString)-1] == '\n' {
					keyString = keyString[:len(keyString)-1]
				}
			}
			normalized[keyString] = normalizeYAMLValue(element)
		}
		return normalized
	case []interface{}:
		for index, element := range typed {
			typed[index] = normalizeYAMLValue(element)
		}
		return typed
	}
	return value
}

// NewYAMLTranscoder builds an application/yaml transcoder on gopkg.in/yaml.v2,
// defaulting to utf-8.
func NewYAMLTranscoder() (*TextTranscoder, error) {
	dumps := func(value interface{}) (string, error) {
		data, err := yaml.Marshal(value)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	loads := func(text string) (interface{}, error) {
		var value interface{}
		if err := yaml.Unmarshal([]byte(text), &value); err != nil {
			return nil, err
		}
		return normalizeYAMLValue(value), nil
	}

	return NewTextTranscoder("application/yaml", "utf-8", dumps, loads)
}
