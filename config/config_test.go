package config_test

import (
	"os"
	"path/filepath"

	"github.com/acrmp/autoscript/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var envKeys = []string{
	"AUTOSCRIPT_PROVIDER",
	"AUTOSCRIPT_MODEL",
	"AZURE_OPENAI_ENDPOINT",
	"AZURE_OPENAI_API_KEY",
	"AZURE_OPENAI_API_VERSION",
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"ANTHROPIC_API_KEY",
}

// restoreEnv unsets key until the test ends.
func restoreEnv(key string) {
	prev, had := os.LookupEnv(key)
	Expect(os.Unsetenv(key)).To(Succeed())
	DeferCleanup(func() {
		if had {
			os.Setenv(key, prev)
			return
		}
		os.Unsetenv(key)
	})
}

var _ = Describe("Config", func() {
	var (
		dir, envFile, configFile string
	)

	BeforeEach(func() {
		for _, k := range envKeys {
			restoreEnv(k)
		}

		var err error
		dir, err = os.MkdirTemp("", "config")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		envFile = filepath.Join(dir, ".env")
		configFile = filepath.Join(dir, "autoscript.yaml")
	})

	Context("when nothing is configured", func() {
		It("uses the defaults", func() {
			c, err := config.Load(envFile, configFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(c).To(Equal(config.Default()))
			Expect(c.Provider).To(Equal("azure"))
			Expect(c.ModelName()).To(Equal("gpt-4o-mini"))
			Expect(c.APIVersion).To(Equal("2024-02-01"))
			Expect(c.Script).To(Equal("generated_script.py"))
			Expect(c.GenerateMaxTokens).To(Equal(10000))
			Expect(c.FixMaxTokens).To(Equal(400))
			Expect(c.Validate()).To(Succeed())
		})
	})

	Context("when the environment holds the azure settings", func() {
		BeforeEach(func() {
			os.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
			os.Setenv("AZURE_OPENAI_API_KEY", "secret")
		})
		It("uses them", func() {
			c, err := config.Load(envFile, configFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.Endpoint).To(Equal("https://example.openai.azure.com"))
			Expect(c.APIKey).To(Equal("secret"))
		})
	})

	Context("when a .env file exists", func() {
		BeforeEach(func() {
			err := os.WriteFile(envFile, []byte("AZURE_OPENAI_ENDPOINT=https://from-file.openai.azure.com\nAZURE_OPENAI_API_KEY=from-file\n"), 0600)
			Expect(err).ToNot(HaveOccurred())
		})
		It("loads it", func() {
			c, err := config.Load(envFile, configFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.Endpoint).To(Equal("https://from-file.openai.azure.com"))
			Expect(c.APIKey).To(Equal("from-file"))
		})

		Context("and the environment already sets a variable", func() {
			BeforeEach(func() {
				os.Setenv("AZURE_OPENAI_API_KEY", "from-env")
			})
			It("keeps the environment value", func() {
				c, err := config.Load(envFile, configFile)
				Expect(err).ToNot(HaveOccurred())
				Expect(c.APIKey).To(Equal("from-env"))
			})
		})
	})

	Context("when a config file exists", func() {
		BeforeEach(func() {
			err := os.WriteFile(configFile, []byte(`
provider: anthropic
model: claude-3-5-sonnet-20240620
interpreter: /usr/local/bin/python3.12
max_installs: 3
package_aliases:
  cv2: opencv-python
  yaml: pyyaml
`), 0600)
			Expect(err).ToNot(HaveOccurred())
			os.Setenv("ANTHROPIC_API_KEY", "anthropic-secret")
			os.Setenv("AZURE_OPENAI_API_KEY", "azure-secret")
		})
		It("applies it over the defaults", func() {
			c, err := config.Load(envFile, configFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.Provider).To(Equal("anthropic"))
			Expect(c.Model).To(Equal("claude-3-5-sonnet-20240620"))
			Expect(c.Interpreter).To(Equal("/usr/local/bin/python3.12"))
			Expect(c.MaxInstalls).To(Equal(3))
			Expect(c.PackageAliases).To(Equal(map[string]string{"cv2": "opencv-python", "yaml": "pyyaml"}))
			Expect(c.FixMaxTokens).To(Equal(400))
		})
		It("uses the credential of the configured provider", func() {
			c, err := config.Load(envFile, configFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.APIKey).To(Equal("anthropic-secret"))
		})

		Context("and the environment overrides the model", func() {
			BeforeEach(func() {
				os.Setenv("AUTOSCRIPT_MODEL", "claude-3-haiku-20240307")
			})
			It("prefers the environment", func() {
				c, err := config.Load(envFile, configFile)
				Expect(err).ToNot(HaveOccurred())
				Expect(c.Model).To(Equal("claude-3-haiku-20240307"))
			})
		})
	})

	Describe("UseProvider", func() {
		BeforeEach(func() {
			os.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
			os.Setenv("AZURE_OPENAI_API_KEY", "azure-secret")
			os.Setenv("OPENAI_API_KEY", "openai-secret")
		})
		It("replaces the endpoint and credential with those of the new provider", func() {
			c, err := config.Load(envFile, configFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.APIKey).To(Equal("azure-secret"))

			c.UseProvider(config.ProviderOpenAI)
			Expect(c.Provider).To(Equal("openai"))
			Expect(c.APIKey).To(Equal("openai-secret"))
			Expect(c.Endpoint).To(BeEmpty())
		})
		It("defaults the model to one the provider serves", func() {
			c, err := config.Load(envFile, configFile)
			Expect(err).ToNot(HaveOccurred())

			c.UseProvider(config.ProviderAnthropic)
			Expect(c.ModelName()).To(Equal("claude-3-5-sonnet-20240620"))
			Expect(c.APIKey).To(BeEmpty())
		})

		Context("when the provider is already configured", func() {
			BeforeEach(func() {
				err := os.WriteFile(configFile, []byte("provider: openai\nendpoint: http://proxy.local/v1\n"), 0600)
				Expect(err).ToNot(HaveOccurred())
			})
			It("keeps the endpoint from the config file", func() {
				c, err := config.Load(envFile, configFile)
				Expect(err).ToNot(HaveOccurred())
				Expect(c.Endpoint).To(Equal("http://proxy.local/v1"))

				c.UseProvider(config.ProviderOpenAI)
				Expect(c.Provider).To(Equal("openai"))
				Expect(c.Endpoint).To(Equal("http://proxy.local/v1"))
				Expect(c.APIKey).To(Equal("openai-secret"))
			})
		})
	})

	Context("when the config file is not valid YAML", func() {
		BeforeEach(func() {
			err := os.WriteFile(configFile, []byte("provider: [azure"), 0600)
			Expect(err).ToNot(HaveOccurred())
		})
		It("errors", func() {
			_, err := config.Load(envFile, configFile)
			Expect(err).To(MatchError(ContainSubstring("could not parse " + configFile)))
		})
	})

	Context("when the config file cannot be read", func() {
		BeforeEach(func() {
			Expect(os.Mkdir(configFile, 0700)).To(Succeed())
		})
		It("errors", func() {
			_, err := config.Load(envFile, configFile)
			Expect(err).To(MatchError(ContainSubstring("could not read " + configFile)))
		})
	})

	Describe("Validate", func() {
		var c config.Config

		BeforeEach(func() {
			c = config.Default()
		})

		It("rejects an unknown provider", func() {
			c.Provider = "mystery"
			Expect(c.Validate()).To(MatchError(`unknown provider: "mystery"`))
		})
		It("rejects a missing interpreter", func() {
			c.Interpreter = ""
			Expect(c.Validate()).To(MatchError("interpreter must be set"))
		})
		It("rejects non-positive token ceilings", func() {
			c.FixMaxTokens = 0
			Expect(c.Validate()).To(MatchError("token ceilings must be positive: generate=10000 fix=0"))
		})
		It("rejects a negative installation limit", func() {
			c.MaxInstalls = -1
			Expect(c.Validate()).To(MatchError("max installs must not be negative: -1"))
		})
		It("allows an unlimited number of installations", func() {
			c.MaxInstalls = 0
			Expect(c.Validate()).To(Succeed())
		})
	})
})
