package models

// Fallback category assigned when no keyword list scores any hit.
const (
	CategoryOther      = "Other"
	CategoryOtherEmoji = "❓"
)

// CategoryConfig is one spending category in the categories YAML file.
// Keywords are matched case-insensitively as substrings.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Emoji    string   `yaml:"emoji"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the top-level structure of the categories YAML file.
// Order is significant: ties during scoring keep the earlier category.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// BankRule maps a sender-address substring to a bank identifier. Rules are
// evaluated in file order and the first match wins.
type BankRule struct {
	Substring string `yaml:"substring"`
	BankID    string `yaml:"id"`
}

// BanksConfig is the top-level structure of the banks YAML file.
type BanksConfig struct {
	Banks []BankRule `yaml:"banks"`
}
