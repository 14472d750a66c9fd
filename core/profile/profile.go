package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"data-reconciler/core/reconcile"

	"github.com/spf13/viper"
)

// Profile describes one table to reconcile.
type Profile struct {
	// Name identifies the profile in reports and logs.
	Name string `mapstructure:"name" json:"name"`
	// Query is an inline SQL query. It takes precedence over SQLFile.
	Query string `mapstructure:"query" json:"-"`
	// SQLFile holds the SQL query that loads the local dataset.
	SQLFile string `mapstructure:"sql_file" json:"sql_file,omitempty"`
	// PrimaryKey is the primary-key column in the query result.
	PrimaryKey string `mapstructure:"primary_key" json:"primary_key"`
	// Endpoint is the resource path appended to the API base path.
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
	// MappingFile holds the ordered remote=local field mapping.
	MappingFile string `mapstructure:"mapping_file" json:"mapping_file"`
	// ResponsePrimaryKey is the primary-key field (or dotted path) in remote records.
	ResponsePrimaryKey string `mapstructure:"response_primary_key" json:"response_primary_key"`
	// RecordsPath locates the record array in a page body.
	RecordsPath string `mapstructure:"records_path" json:"records_path"`
	// TotalPath locates the total-count hint in a page body.
	TotalPath string `mapstructure:"total_path" json:"total_path"`
	// PageSize overrides the configured page size when positive.
	PageSize int `mapstructure:"page_size" json:"page_size,omitempty"`
	// TargetRecords overrides the configured target when positive.
	TargetRecords int `mapstructure:"target_records" json:"target_records,omitempty"`
}

// Default locations of records and total in a page body.
const (
	DefaultRecordsPath = "results"
	DefaultTotalPath   = "total"
)

// ErrNotFound is wrapped by Load when no profile file exists.
var ErrNotFound = errors.New("profile not found")

// profileExts are the profile file extensions, in lookup order.
var profileExts = []string{".yaml", ".yml"}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Load reads the profile called name from resourceDir.
func Load(resourceDir, name string) (*Profile, error) {
	if !validName.MatchString(name) {
		return nil, reconcile.ConfigurationError("load profile", fmt.Errorf("invalid profile name %q", name))
	}

	file, err := find(resourceDir, name)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	v.SetDefault("name", name)
	v.SetDefault("records_path", DefaultRecordsPath)
	v.SetDefault("total_path", DefaultTotalPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, reconcile.ConfigurationError("load profile", fmt.Errorf("failed to read profile %q: %w", name, err))
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, reconcile.ConfigurationError("load profile", fmt.Errorf("failed to decode profile %q: %w", name, err))
	}

	p.SQLFile = resolve(resourceDir, p.SQLFile)
	p.MappingFile = resolve(resourceDir, p.MappingFile)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports the first missing required key.
func (p *Profile) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"primary_key", p.PrimaryKey},
		{"endpoint", p.Endpoint},
		{"mapping_file", p.MappingFile},
		{"response_primary_key", p.ResponsePrimaryKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return reconcile.ConfigurationError("load profile", fmt.Errorf("profile %q is missing %s", p.Name, r.key))
		}
	}
	if strings.TrimSpace(p.Query) == "" && strings.TrimSpace(p.SQLFile) == "" {
		return reconcile.ConfigurationError("load profile", fmt.Errorf("profile %q needs either query or sql_file", p.Name))
	}
	if p.PageSize < 0 {
		return reconcile.ConfigurationError("load profile", fmt.Errorf("profile %q has a negative page_size", p.Name))
	}
	return nil
}

// ReadQuery returns the SQL query of the profile.
func (p *Profile) ReadQuery() (string, error) {
	if q := strings.TrimSpace(p.Query); q != "" {
		return q, nil
	}

	data, err := os.ReadFile(p.SQLFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", reconcile.ConfigurationError("read query", fmt.Errorf("sql file %s does not exist", p.SQLFile))
		}
		return "", reconcile.ConfigurationError("read query", fmt.Errorf("failed to read %s: %w", p.SQLFile, err))
	}

	q := strings.TrimSpace(string(data))
	q = strings.TrimSuffix(q, ";")
	if q == "" {
		return "", reconcile.ConfigurationError("read query", fmt.Errorf("sql file %s is empty", p.SQLFile))
	}
	return q, nil
}

// List returns the names of the profiles found in resourceDir, sorted.
func List(resourceDir string) ([]string, error) {
	entries, err := os.ReadDir(resourceDir)
	if err != nil {
		return nil, reconcile.ConfigurationError("list profiles", fmt.Errorf("failed to read %s: %w", resourceDir, err))
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(profileExts, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// find returns the YAML file of profile name. Other files sharing the name,
// such as a mapping file, are ignored.
func find(resourceDir, name string) (string, error) {
	for _, ext := range profileExts {
		file := filepath.Join(resourceDir, name+ext)
		info, err := os.Stat(file)
		if err == nil && !info.IsDir() {
			return file, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", reconcile.ConfigurationError("load profile", fmt.Errorf("failed to stat %s: %w", file, err))
		}
	}
	return "", reconcile.ConfigurationError("load profile", fmt.Errorf("%w: %q in %s", ErrNotFound, name, resourceDir))
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
