package model

// AppConfig holds user preferences applied to new jobs.
type AppConfig struct {
	DefaultAlgorithm Algorithm `json:"default_algorithm"`
	DefaultRotate    bool      `json:"default_rotate"`
	DefaultSort      SortOrder `json:"default_sort"`
	DefaultSearch    Search    `json:"default_search"`

	OutputDir  string   `json:"output_dir"` // Where exports land when given a bare file name
	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig matching DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm: defaults.Algorithm,
		DefaultRotate:    defaults.AllowRotate,
		DefaultSort:      defaults.Sort,
		DefaultSearch:    defaults.Search,
		OutputDir:        "",
		RecentJobs:       []string{},
	}
}

// ApplyToSettings copies the configured defaults into s. Empty values leave
// the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultAlgorithm != "" {
		s.Algorithm = c.DefaultAlgorithm
	}
	if c.DefaultSort != "" {
		s.Sort = c.DefaultSort
	}
	if c.DefaultSearch != "" {
		s.Search = c.DefaultSearch
	}
	s.AllowRotate = c.DefaultRotate
}

// AddRecentJob moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentJob(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentJobs = recent
}
