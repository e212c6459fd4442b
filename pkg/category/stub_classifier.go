package category

import "context"

// StubClassifier is a scripted TextClassifier for tests.
type StubClassifier struct {
	labels map[string]string
	err    error
	calls  int
}

func NewStubClassifier() *StubClassifier {
	return &StubClassifier{labels: map[string]string{}}
}

func (s *StubClassifier) SetLabel(title string, label string) {
	s.labels[title] = label
}

func (s *StubClassifier) FailWith(err error) {
	s.err = err
}

func (s *StubClassifier) Calls() int {
	return s.calls
}

func (s *StubClassifier) ClassifyText(_ context.Context, title string, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.labels[title], nil
}

func (s *StubClassifier) Cleanup() {
	s.labels = map[string]string{}
	s.err = nil
	s.calls = 0
}
