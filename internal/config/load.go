package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
)

// EnvPrefix is prepended to every environment override, e.g. SORTBENCH_SIZES.
const EnvPrefix = "SORTBENCH"

// Settings is the typed view of the loaded configuration.
type Settings struct {
	Sizes              []int
	Mode               string
	SkipPolicy         string
	SkipThreshold      int
	SelectionThreshold int
	Algorithms         []string

	DataMin int
	DataMax int
	Seed    int64

	Workers int
	Timeout time.Duration

	OutputFormat string
	OutputFile   string

	ServerHost    string
	ServerPort    int
	ServerMaxSize int
	RatePerMinute int
	MetricsPort   int

	Verbose bool
	LogFile string
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("sizes", []int{1000, 10000, 50000})
	viper.SetDefault("mode", string(benchmark.ModeSkip))
	viper.SetDefault("skip.policy", benchmark.PolicyQuadratic)
	viper.SetDefault("skip.threshold", benchmark.DefaultQuadraticThreshold)
	viper.SetDefault("skip.selection_threshold", benchmark.DefaultSelectionThreshold)
	viper.SetDefault("algorithms", []string{})
	viper.SetDefault("data.min", dataset.DefaultMin)
	viper.SetDefault("data.max", dataset.DefaultMax)
	viper.SetDefault("data.seed", 0)
	viper.SetDefault("workers", 1)
	viper.SetDefault("timeout", "0s")
	viper.SetDefault("output.format", "table")
	viper.SetDefault("output.file", "")
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.max_size", 100000)
	viper.SetDefault("server.rate_per_minute", 30)
	viper.SetDefault("metrics_port", 0)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
}

// Load initializes the configuration from file and environment variables.
// A missing config file is fine; an explicitly named one that cannot be
// read is an error.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Current materializes the active configuration.
func Current() (Settings, error) {
	sizes, err := intList("sizes")
	if err != nil {
		return Settings{}, err
	}
	timeout, err := durationOrSeconds("timeout")
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Sizes:              sizes,
		Mode:               viper.GetString("mode"),
		SkipPolicy:         viper.GetString("skip.policy"),
		SkipThreshold:      viper.GetInt("skip.threshold"),
		SelectionThreshold: viper.GetInt("skip.selection_threshold"),
		Algorithms:         stringList("algorithms"),
		DataMin:            viper.GetInt("data.min"),
		DataMax:            viper.GetInt("data.max"),
		Seed:               viper.GetInt64("data.seed"),
		Workers:            viper.GetInt("workers"),
		Timeout:            timeout,
		OutputFormat:       viper.GetString("output.format"),
		OutputFile:         viper.GetString("output.file"),
		ServerHost:         viper.GetString("server.host"),
		ServerPort:         viper.GetInt("server.port"),
		ServerMaxSize:      viper.GetInt("server.max_size"),
		RatePerMinute:      viper.GetInt("server.rate_per_minute"),
		MetricsPort:        viper.GetInt("metrics_port"),
		Verbose:            viper.GetBool("verbose"),
		LogFile:            viper.GetString("log_file"),
	}, nil
}

// EngineOptions translates the settings into benchmark options.
func (s Settings) EngineOptions() (benchmark.Options, error) {
	mode, err := benchmark.ParseMode(s.Mode)
	if err != nil {
		return benchmark.Options{}, err
	}
	policy, err := benchmark.PolicyByName(s.SkipPolicy, s.SkipThreshold, s.SelectionThreshold)
	if err != nil {
		return benchmark.Options{}, err
	}
	algs, err := benchmark.ParseAlgorithms(s.Algorithms)
	if err != nil {
		return benchmark.Options{}, err
	}
	return benchmark.Options{
		Algorithms: algs,
		Mode:       mode,
		Policy:     policy,
		Timeout:    s.Timeout,
		Workers:    s.Workers,
	}, nil
}

// Generator builds the random data source described by the settings.
func (s Settings) Generator() (*dataset.Generator, error) {
	return dataset.NewGenerator(s.DataMin, s.DataMax, s.Seed)
}

// intList accepts YAML lists as well as comma separated env values.
func intList(key string) ([]int, error) {
	switch v := viper.Get(key).(type) {
	case nil:
		return nil, nil
	case string:
		return ParseSizes(v)
	case []string:
		return ParseSizes(strings.Join(v, ","))
	}
	return viper.GetIntSlice(key), nil
}

func stringList(key string) []string {
	if s, ok := viper.Get(key).(string); ok {
		return splitList(s)
	}
	return viper.GetStringSlice(key)
}

// ParseSizes parses "1000, 10k,50000" style lists. A trailing k or m
// multiplies by one thousand or one million.
func ParseSizes(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		mult := 1
		lower := strings.ToLower(part)
		switch {
		case strings.HasSuffix(lower, "k"):
			mult, lower = 1000, strings.TrimSuffix(lower, "k")
		case strings.HasSuffix(lower, "m"):
			mult, lower = 1000000, strings.TrimSuffix(lower, "m")
		}
		n, err := strconv.Atoi(strings.ReplaceAll(lower, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", part)
		}
		out = append(out, n*mult)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// durationOrSeconds reads "30s" style durations and bare integers as seconds.
func durationOrSeconds(key string) (time.Duration, error) {
	switch v := viper.Get(key).(type) {
	case nil:
		return 0, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case time.Duration:
		return v, nil
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return time.Duration(n) * time.Second, nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s: invalid duration %q", key, v)
		}
		return d, nil
	}
	return viper.GetDuration(key), nil
}
