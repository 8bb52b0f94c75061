package factory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/job-contact-extractor/internal/adapters/intake"
	"github.com/mikey/job-contact-extractor/internal/adapters/mxcheck"
	"github.com/mikey/job-contact-extractor/internal/adapters/ratelimit"
	"github.com/mikey/job-contact-extractor/internal/adapters/store"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/extractor"
	"github.com/mikey/job-contact-extractor/internal/utils"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(settings map[string]interface{}) *config.Config {
	v := config.NewEmptyViper()
	for k, val := range settings {
		v.Set(k, val)
	}
	return config.NewFromViper(v)
}

func TestExtractorFactory_Defaults(t *testing.T) {
	f := NewExtractorFactory(testConfig(nil), zap.NewNop())

	c, err := f.CreateConfig()
	require.NoError(t, err)
	assert.Equal(t, extractor.DefaultConfig(), c)

	ext, err := f.CreateExtractor()
	require.NoError(t, err)
	assert.Equal(t, "jobs@firma.de", ext.Extract("<p>jobs@firma.de</p>", "").BestEmail)
}

func TestExtractorFactory_Overrides(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("extractor.denylist", []string{"firma.de"})
	v.Set("extractor.company_bonus", 3)
	v.Set("extractor.weights", []map[string]interface{}{
		{"keyword": "presse", "score": 20},
	})
	f := NewExtractorFactory(config.NewFromViper(v), zap.NewNop())

	c, err := f.CreateConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"firma.de"}, c.Denylist)
	assert.Equal(t, 3, c.CompanyBonus)
	assert.Equal(t, []extractor.Weight{{Keyword: "presse", Score: 20}}, c.Weights)
	assert.Equal(t, extractor.DefaultSuffixes(), c.Suffixes)
	assert.Equal(t, extractor.DefaultPortalDomains(), c.PortalDomains)

	ext, err := f.CreateExtractor()
	require.NoError(t, err)
	result := ext.Extract("info@firma.de bewerbung@agentur.de presse@agentur.de", "")
	assert.Equal(t, []string{"presse@agentur.de", "bewerbung@agentur.de"}, result.Emails)
}

func TestExtractorFactory_PortalDomains(t *testing.T) {
	f := NewExtractorFactory(testConfig(map[string]interface{}{
		"extractor.portal_domains": map[string][]string{"regional": {"jobs-nordhessen.de"}},
	}), zap.NewNop())

	c, err := f.CreateConfig()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"regional": {"jobs-nordhessen.de"}}, c.PortalDomains)

	ext, err := f.CreateExtractor()
	require.NoError(t, err)
	got := ext.Extract(`<a href="https://www.jobs-nordhessen.de/a/1">Anzeige</a><a href="https://firma.de">Firma</a>`, "")
	assert.Equal(t, "https://firma.de", got.ApplicationWebsite)
}

func TestExtractorFactory_NegativeBonus(t *testing.T) {
	f := NewExtractorFactory(testConfig(map[string]interface{}{"extractor.company_bonus": -1}), zap.NewNop())
	_, err := f.CreateExtractor()
	assert.Error(t, err)
}

func TestExtractorFactory_IgnoredDomains(t *testing.T) {
	f := NewExtractorFactory(testConfig(map[string]interface{}{
		"extractor.ignored_domains": []string{"personaldienst.de"},
	}), zap.NewNop())

	checker := f.CreateIgnoredDomains()
	assert.True(t, checker.Contains("jobs@personaldienst.de"))
	assert.False(t, checker.Contains("jobs@firma.de"))
}

func TestStoreFactory(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := NewStoreFactory(testConfig(map[string]interface{}{"store.enabled": false}), zap.NewNop())
		repo, err := f.CreateStore()
		require.NoError(t, err)
		assert.Nil(t, repo)
		assert.False(t, f.IsEnabled())
	})

	t.Run("memory", func(t *testing.T) {
		f := NewStoreFactory(testConfig(map[string]interface{}{"store.cleanup_frequency": "0s"}), zap.NewNop())
		repo, err := f.CreateStore()
		require.NoError(t, err)
		require.IsType(t, &store.MemoryStore{}, repo)
		repo.(*store.MemoryStore).Stop()

		ttl, err := f.GetTTL()
		require.NoError(t, err)
		assert.Equal(t, 720*time.Hour, ttl)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "contacts.db")
		f := NewStoreFactory(testConfig(map[string]interface{}{
			"store.type":              "sqlite",
			"store.sqlite_path":       path,
			"store.cleanup_frequency": "0s",
		}), zap.NewNop())

		repo, err := f.CreateStore()
		require.NoError(t, err)
		require.IsType(t, &store.SQLStore{}, repo)
		repo.(*store.SQLStore).Stop()
	})

	t.Run("unsupported", func(t *testing.T) {
		f := NewStoreFactory(testConfig(map[string]interface{}{"store.type": "redis"}), zap.NewNop())
		_, err := f.CreateStore()
		assert.EqualError(t, err, "unsupported store type: redis")
	})

	t.Run("invalid ttl", func(t *testing.T) {
		f := NewStoreFactory(testConfig(map[string]interface{}{"store.ttl": "forever"}), zap.NewNop())
		_, err := f.CreateStore()
		assert.Error(t, err)
	})
}

func TestAssistFactory(t *testing.T) {
	tp := utils.NewTextProcessor(zap.NewNop())

	t.Run("disabled", func(t *testing.T) {
		f := NewAssistFactory(testConfig(nil), zap.NewNop(), tp)
		a, err := f.CreateAssistant(context.Background())
		require.NoError(t, err)
		assert.Nil(t, a)
		assert.NoError(t, f.Close())
	})

	t.Run("openai", func(t *testing.T) {
		f := NewAssistFactory(testConfig(map[string]interface{}{
			"assist.enabled":  true,
			"assist.provider": "openai",
			"openai.api_key":  "sk-test",
		}), zap.NewNop(), tp)
		a, err := f.CreateAssistant(context.Background())
		require.NoError(t, err)
		assert.IsType(t, &ratelimit.Assistant{}, a)
	})

	t.Run("openai without key", func(t *testing.T) {
		f := NewAssistFactory(testConfig(map[string]interface{}{
			"assist.enabled":  true,
			"assist.provider": "openai",
		}), zap.NewNop(), tp)
		_, err := f.CreateAssistant(context.Background())
		assert.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		f := NewAssistFactory(testConfig(map[string]interface{}{
			"assist.enabled":  true,
			"assist.provider": "eliza",
		}), zap.NewNop(), tp)
		_, err := f.CreateAssistant(context.Background())
		assert.EqualError(t, err, "unsupported assist provider: eliza")
	})
}

func TestCreateVerifier(t *testing.T) {
	v, err := CreateVerifier(testConfig(nil), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = CreateVerifier(testConfig(map[string]interface{}{"verify.mx.enabled": true}), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &mxcheck.Verifier{}, v)

	_, err = CreateVerifier(testConfig(map[string]interface{}{
		"verify.mx.enabled": true,
		"verify.mx.servers": []string{},
	}), zap.NewNop())
	assert.Error(t, err)
}

func TestCreateNotifier(t *testing.T) {
	n, err := CreateNotifier(testConfig(nil), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = CreateNotifier(testConfig(map[string]interface{}{"notify.telegram.enabled": true}), zap.NewNop())
	assert.Error(t, err)
}

func TestIntakeFactory(t *testing.T) {
	service := core.NewContactService(extractor.New(extractor.DefaultConfig()), nil, zap.NewNop(), false, time.Hour)

	tests := []struct {
		intakeType string
		want       interface{}
	}{
		{"http", &intake.HTTPIntake{}},
		{"smtp", &intake.SMTPIntake{}},
		{"cli", &intake.CLIIntake{}},
	}

	for _, tt := range tests {
		t.Run(tt.intakeType, func(t *testing.T) {
			f := NewIntakeFactory(testConfig(map[string]interface{}{"server.intake_type": tt.intakeType}), zap.NewNop(), service)
			i, err := f.CreateIntake()
			require.NoError(t, err)
			assert.IsType(t, tt.want, i)
		})
	}

	f := NewIntakeFactory(config.NewFromViper(viper.New()), zap.NewNop(), service)
	_, err := f.CreateIntake()
	assert.Error(t, err)
}
