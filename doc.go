// Package filesniff detects the content type of files and streams from their
// leading bytes, independent of file names and extensions.
//
// Detection looks at no more than the first 512 bytes. The signature rules
// and the matching pipeline live in the [signature] package; this package
// acquires headers from paths, streams and storage backends, and wraps the
// outcome in a [Result].
//
// # Basic Usage
//
//	r, err := filesniff.DetectFile("upload.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.Type())        // e.g. "image/png"
//	fmt.Println(r.IsScriptable()) // false
//
// Streams keep their cursor:
//
//	f, _ := os.Open("upload.bin")
//	f.Seek(100, io.SeekStart)
//	r, err := filesniff.DetectReader(f) // reads from offset 0, restores 100
//
// An empty source is reported as [EmptyResource] ("inode/x-empty"), and
// content no rule recognizes as "application/octet-stream".
//
// # Sniffer Service
//
// [Sniffer] adds a result cache, logrus logging, OpenTelemetry metrics and
// storage drivers. It is configured from the environment:
//
//	BEAVER_FILESNIFF_DRIVER=local
//	BEAVER_FILESNIFF_LOCAL_BASE_PATH=/srv/uploads
//	BEAVER_FILESNIFF_RULES_FILE=/etc/filesniff/rules.yaml
//	BEAVER_FILESNIFF_CACHE_ENABLED=true
//	BEAVER_FILESNIFF_CACHE_TTL=300
//	BEAVER_FILESNIFF_CACHE_MAX_ENTRIES=1024
//	BEAVER_FILESNIFF_LOG_LEVEL=debug
//	BEAVER_FILESNIFF_LOG_FORMAT=json
//	BEAVER_FILESNIFF_METRICS_ENABLED=true
//
// Usage:
//
//	import _ "github.com/gobeaver/filesniff/driver/local"
//
//	if err := filesniff.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	s, _ := filesniff.Default()
//	r, err := s.SniffPath(ctx, "avatars/42.png")
//
// Use [WithPrefix] to load variables under a different prefix.
//
// # Storage Drivers
//
//   - Local filesystem rooted at a directory (github.com/gobeaver/filesniff/driver/local)
//   - In-memory (github.com/gobeaver/filesniff/driver/memory)
//
// Drivers register themselves on import. With no driver configured,
// SniffPath reads host paths directly.
package filesniff
