package script

import "strings"

// Kind is the category of a failed run.
type Kind int

const (
	KindOther Kind = iota
	KindMissingDependency
)

// A Diagnosis is the classification of the error output of a failed run.
type Diagnosis struct {
	Kind Kind
	// Dependency is set for KindMissingDependency.
	Dependency string
}

// A Classifier decides how a failed run should be remediated.
type Classifier interface {
	Classify(diagnostic string) Diagnosis
}

// ModuleNotFoundClassifier recognises python import failures.
//
// It expects the message shape "No module named 'name'" and takes the first
// single quoted token as the module name.
type ModuleNotFoundClassifier struct{}

const moduleNotFoundSignature = "ModuleNotFoundError"

// Classify returns KindMissingDependency with the module name when the
// diagnostic reports a missing module, otherwise KindOther.
func (ModuleNotFoundClassifier) Classify(diagnostic string) Diagnosis {
	if !strings.Contains(diagnostic, moduleNotFoundSignature) {
		return Diagnosis{Kind: KindOther}
	}
	parts := strings.Split(diagnostic, "'")
	if len(parts) < 3 || parts[1] == "" {
		return Diagnosis{Kind: KindOther}
	}
	return Diagnosis{Kind: KindMissingDependency, Dependency: parts[1]}
}
