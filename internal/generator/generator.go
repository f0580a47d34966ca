// Package generator builds typing paragraphs.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidConfiguration reports an empty vocabulary or a non-positive length.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Generator produces randomized paragraphs.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Paragraph selects length words uniformly from vocabulary, with replacement.
func (g *Generator) Paragraph(vocabulary []string, length int) ([]string, error) {
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w: vocabulary is empty", ErrInvalidConfiguration)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: paragraph length must be > 0, got %d", ErrInvalidConfiguration, length)
	}
	result := make([]string, 0, length)
	for i := 0; i < length; i++ {
		result = append(result, vocabulary[g.rnd.Intn(len(vocabulary))])
	}
	return result, nil
}
