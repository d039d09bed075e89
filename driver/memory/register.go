package memory

import "github.com/gobeaver/filesniff"

func init() {
	filesniff.RegisterDriver("memory", func(cfg *filesniff.Config) (filesniff.FileReader, error) {
		return New(), nil
	})
}
