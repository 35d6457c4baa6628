package config

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

const (
	KeyChannel          = "SLACK_CHANNEL"
	KeyWebhookParameter = "SSM_SLACK_WEBHOOK"
	KeyEnvironment      = "ENVIRONMENT"
	KeyRegion           = "AWS_REGION"
	KeyDefaultRegion    = "AWS_DEFAULT_REGION"
	KeyDebug            = "DEBUG"
	KeyConfigFile       = "NOTIFIER_CONFIG"
)

const (
	DefaultIconURL    = "https://upload-icon.s3.us-east-2.amazonaws.com/uploads/icons/png/1349651671536126578-512.png"
	DefaultOKColor    = "#16C616"
	DefaultAlarmColor = "#EC0030"
)

type Config struct {
	Debug bool `yaml:"debug"`

	Channel          string `yaml:"-"`
	WebhookParameter string `yaml:"-"`
	Environment      string `yaml:"-"`
	Region           string `yaml:"-"`

	Slack struct {
		Username   string `yaml:"username"`
		IconURL    string `yaml:"icon_url"`
		OKColor    string `yaml:"ok_color"`
		AlarmColor string `yaml:"alarm_color"`
	} `yaml:"slack"`

	Routes []Route `yaml:"routes"`
}

// Route sends alarms whose name matches AlarmName to Channel instead of the
// default channel.
type Route struct {
	AlarmName string `yaml:"alarm_name"`
	Channel   string `yaml:"channel"`

	pattern glob.Glob
}

// MissingKeysError lists every required key absent from the environment.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Keys, ", "))
}

// Load builds the configuration from lookup, usually os.LookupEnv. When
// NOTIFIER_CONFIG names a file it is read first; environment values for
// the required keys always take precedence.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	c := &Config{}
	c.Slack.IconURL = DefaultIconURL
	c.Slack.OKColor = DefaultOKColor
	c.Slack.AlarmColor = DefaultAlarmColor

	if filename, ok := lookup(KeyConfigFile); ok && filename != "" {
		if err := c.loadFile(filename); err != nil {
			return nil, err
		}
	}

	var missing []string
	required := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
			return
		}
		missing = append(missing, key)
	}
	required(KeyChannel, &c.Channel)
	required(KeyWebhookParameter, &c.WebhookParameter)
	required(KeyEnvironment, &c.Environment)

	if v, ok := lookup(KeyRegion); ok && v != "" {
		c.Region = v
	} else if v, ok := lookup(KeyDefaultRegion); ok && v != "" {
		c.Region = v
	} else {
		missing = append(missing, KeyRegion)
	}

	if len(missing) > 0 {
		return nil, &MissingKeysError{Keys: missing}
	}

	if v, ok := lookup(KeyDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", KeyDebug)
		}
		c.Debug = debug
	}

	for i := range c.Routes {
		r := &c.Routes[i]
		if r.AlarmName == "" || r.Channel == "" {
			return nil, errors.Errorf("route %d: alarm_name and channel are required", i)
		}
		pattern, err := glob.Compile(r.AlarmName)
		if err != nil {
			return nil, errors.Wrapf(err, "route %d: compile %q", i, r.AlarmName)
		}
		r.pattern = pattern
	}

	return c, nil
}

func (c *Config) loadFile(filename string) error {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return errors.Wrapf(err, "parse %s", filename)
	}

	return nil
}

// ChannelFor returns the channel of the first route matching alarmName, or
// the default channel.
func (c *Config) ChannelFor(alarmName string) string {
	for _, r := range c.Routes {
		if r.pattern != nil && r.pattern.Match(alarmName) {
			return r.Channel
		}
	}
	return c.Channel
}

func (c *Config) EnvironmentTitle() string {
	return cases.Title(language.Und).String(c.Environment)
}
