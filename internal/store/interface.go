package store

import "github.com/amterp/colplot/internal/model"

// TableStore reads tab-separated measurement files.
// visitor may be nil.
type TableStore interface {
	Load(path string, mode model.LabelMode, visitor TableVisitor) (*model.Table, error)
}

// TableVisitor sees a table while it is read, in file order: the header line
// first, then each row as soon as it parses. An error from Row stops the read
// and is returned as is.
type TableVisitor interface {
	Header(label string, headers []string)
	Row(row model.Row) error
}

// ConfigStore handles config file persistence.
type ConfigStore interface {
	Load(path string) (*model.Config, error)
	LoadFirst(candidates []string) (*model.Config, string, error)
	Save(path string, config *model.Config) error
}
