// Package signature classifies content by its leading bytes.
//
// A Table groups masked byte-pattern rules into categories. Sniff runs a
// fixed pipeline over those categories and returns the type of the first rule
// that matches:
//
//	empty, images, media (plus the MP4 ftyp scanner), fonts, archives,
//	text (rejected when the header holds binary bytes), unknown (HTML, XML
//	and PDF), misc (executables), fallback
//
// Order is significant both between and within categories. Headers no rule
// claims are reported as application/octet-stream, and an empty header as
// inode/x-empty.
//
// Example:
//
//	m := signature.Sniff([]byte("GIF89a..."), nil)
//	fmt.Println(m.Type) // image/gif
//
// Custom tables can be loaded from YAML with LoadTable. Byte fields are hex:
//
//	images:
//	  - type: image/png
//	    pattern: 89 50 4e 47 0d 0a 1a 0a
//	unknown:
//	  - type: text/html
//	    pattern: 3c 48 54 4d 4c
//	    mask: ff df df df df
//	    ignore: 09 0a 0c 0d 20
//	    terminators: 20 3e
//	    trailer: ff
package signature
