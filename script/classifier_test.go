package script_test

import (
	"github.com/acrmp/autoscript/script"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ModuleNotFoundClassifier", func() {
	var c script.Classifier

	BeforeEach(func() {
		c = script.ModuleNotFoundClassifier{}
	})

	It("extracts the missing module from a python traceback", func() {
		d := c.Classify("Traceback (most recent call last):\n  File \"generated_script.py\", line 2, in <module>\n    import requests\nModuleNotFoundError: No module named 'requests'\n")
		Expect(d.Kind).To(Equal(script.KindMissingDependency))
		Expect(d.Dependency).To(Equal("requests"))
	})

	It("takes the first quoted token", func() {
		d := c.Classify("ModuleNotFoundError: No module named 'yaml'; also 'other'")
		Expect(d).To(Equal(script.Diagnosis{Kind: script.KindMissingDependency, Dependency: "yaml"}))
	})

	DescribeTable("other failures",
		func(diagnostic string) {
			Expect(c.Classify(diagnostic)).To(Equal(script.Diagnosis{Kind: script.KindOther}))
		},
		Entry("a syntax error", "  File \"generated_script.py\", line 1\n    print('hi'\nSyntaxError: '(' was never closed\n"),
		Entry("a name error quoting a name", "NameError: name 'foo' is not defined"),
		Entry("an import error that is not a missing module", "ImportError: cannot import name 'x' from 'y'"),
		Entry("the signature without a quoted module", "ModuleNotFoundError: No module named"),
		Entry("an empty diagnostic", ""),
	)
})
