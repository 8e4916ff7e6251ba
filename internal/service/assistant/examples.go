package assistant

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	"gopkg.in/yaml.v3"
)

//go:embed few_shots.yaml
var defaultExamples []byte

// LoadExamples reads the few-shot catalogue from path, or the built-in one
// when path is empty.
func LoadExamples(path string) ([]assistant.Example, error) {
	data := defaultExamples
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read examples: %w", err)
		}
	}

	var examples []assistant.Example
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to parse examples: %w", err)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("example catalogue %q is empty", path)
	}
	return examples, nil
}

type termVector map[string]float64

// ExampleSelector ranks examples by cosine similarity of term frequencies.
type ExampleSelector struct {
	examples []assistant.Example
	vectors  []termVector
}

func NewExampleSelector(examples []assistant.Example) *ExampleSelector {
	s := &ExampleSelector{examples: examples, vectors: make([]termVector, len(examples))}
	for i, e := range examples {
		s.vectors[i] = vectorize(e.Text())
	}
	return s
}

// Select returns the k examples closest to question. Ties keep catalogue
// order, so a question sharing no terms gets the first k.
func (s *ExampleSelector) Select(question string, k int) []assistant.Example {
	if k > len(s.examples) {
		k = len(s.examples)
	}
	if k <= 0 {
		return nil
	}

	q := vectorize(question)
	order := make([]int, len(s.examples))
	scores := make([]float64, len(s.examples))
	for i := range s.examples {
		order[i] = i
		scores[i] = cosine(q, s.vectors[i])
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]assistant.Example, 0, k)
	for _, i := range order[:k] {
		out = append(out, s.examples[i])
	}
	return out
}

func vectorize(text string) termVector {
	v := termVector{}
	for _, term := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}) {
		v[term]++
	}
	return v
}

func cosine(a, b termVector) float64 {
	var dot, na, nb float64
	for term, x := range a {
		dot += x * b[term]
		na += x * x
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
