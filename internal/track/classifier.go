// Package track assigns repositories to logical tracks.
package track

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TopicPrefix marks a repository topic that names the repository's track.
const TopicPrefix = "track-"

// Mapping associates lower-cased repository names with track labels.
type Mapping map[string]string

// LoadMapping reads a YAML file of the form
//
//	backend:
//	  - repo-a
//	  - repo-b
//
// and inverts it into a Mapping. A missing file yields an empty Mapping.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read track map %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse track map %s: %w", path, err)
	}

	m := make(Mapping)
	if len(doc.Content) == 0 {
		return m, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse track map %s: line %d: want a mapping of track to repositories", path, root.Line)
	}
	// Pairs are walked in document order, so a repository listed under several tracks gets the last one.
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		var repos []string
		if err := valueNode.Decode(&repos); err != nil {
			return nil, fmt.Errorf("failed to parse track map %s: track %q: %w", path, keyNode.Value, err)
		}
		for _, repo := range repos {
			m[strings.ToLower(repo)] = keyNode.Value
		}
	}
	return m, nil
}

// Classifier infers a repository's track from its topics, then from a static Mapping.
type Classifier struct {
	mapping Mapping
}

// NewClassifier creates a Classifier. A nil mapping is valid and disables the fallback lookup.
func NewClassifier(mapping Mapping) *Classifier {
	return &Classifier{mapping: mapping}
}

// Infer returns the track for a repository and whether one was found.
// The first topic carrying TopicPrefix wins over the mapping.
func (c *Classifier) Infer(repoName string, topics []string) (string, bool) {
	for _, topic := range topics {
		if suffix, ok := strings.CutPrefix(topic, TopicPrefix); ok {
			return suffix, true
		}
	}
	track, ok := c.mapping[strings.ToLower(repoName)]
	return track, ok
}
