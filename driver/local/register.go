package local

import "github.com/gobeaver/filesniff"

func init() {
	filesniff.RegisterDriver("local", func(cfg *filesniff.Config) (filesniff.FileReader, error) {
		adapter, err := New(cfg.LocalBasePath)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	})
}
