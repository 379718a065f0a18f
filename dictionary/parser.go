package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is returned by Parse, carrying the line number and offending
// text, when a line does not match any recognized directive.
type ErrSyntax struct {
	Line int
	Text string
}

func (e *ErrSyntax) Error() string {
	return fmt.Sprintf("dictionary: syntax error at line %d: %q", e.Line, e.Text)
}

// typeKind maps the grammar's type keywords to Kind. "date" is accepted and
// encoded exactly like "integer" per spec.md's §6 grammar note.
var typeKind = map[string]Kind{
	"string":     KindString,
	"octets":     KindOctets,
	"integer":    KindInteger,
	"date":       KindDate,
	"ipaddr":     KindIPv4,
	"ipv6addr":   KindIPv6,
	"ipv6prefix": KindIPv6Prefix,
}

// FileSystem resolves $INCLUDE paths. Open returns an io.ReadCloser, so an
// fs.FS such as embed.FS or os.DirFS (whose Open returns fs.File) does not
// satisfy it directly; OSFileSystem and small in-memory maps in tests do.
type FileSystem interface {
	Open(path string) (io.ReadCloser, error)
}

// Parse reads the text dictionary grammar of spec.md §6 from r and
// registers every ATTRIBUTE/VALUE/VENDOR/VENDORATTR directive into d.
// $INCLUDE directives are resolved via fsys, relative to dir (the
// directory containing the file currently being read); pass an empty dir
// and a FileSystem that ignores it if includes are not in use.
//
// Any directive other than the five recognized ones fails with *ErrSyntax
// naming the offending line number.
func Parse(d *Dictionary, r io.Reader, dir string, fsys FileSystem) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	// No vendor state is carried between lines: each VENDORATTR line names
	// its vendor id in its own argument, unlike some dialects of this
	// grammar.
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		keyword := strings.ToUpper(fields[0])
		var err error
		switch keyword {
		case "ATTRIBUTE":
			err = parseAttribute(d, fields)
		case "VALUE":
			err = parseValue(d, fields)
		case "VENDOR":
			err = parseVendor(d, fields)
		case "VENDORATTR":
			err = parseVendorAttr(d, fields)
		case "$INCLUDE":
			err = parseInclude(d, fields, dir, fsys)
		default:
			return &ErrSyntax{Line: lineNo, Text: line}
		}
		if err != nil {
			return fmt.Errorf("dictionary: line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}

func parseAttribute(d *Dictionary, fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("ATTRIBUTE requires 3 arguments, got %d", len(fields)-1)
	}
	name, codeStr, typeStr := fields[1], fields[2], fields[3]
	code, err := strconv.ParseUint(codeStr, 10, 8)
	if err != nil {
		return fmt.Errorf("ATTRIBUTE code %q: %w", codeStr, err)
	}
	kind, ok := typeKind[strings.ToLower(typeStr)]
	if !ok {
		return fmt.Errorf("ATTRIBUTE unknown type %q", typeStr)
	}
	return d.AddAttribute(&Descriptor{
		Name:     name,
		TypeCode: byte(code),
		VendorID: NoVendor,
		Kind:     kind,
	})
}

func parseValue(d *Dictionary, fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("VALUE requires 3 arguments, got %d", len(fields)-1)
	}
	attrName, enumName, valStr := fields[1], fields[2], fields[3]
	val, err := strconv.ParseUint(valStr, 10, 32)
	if err != nil {
		return fmt.Errorf("VALUE integer-value %q: %w", valStr, err)
	}
	return d.AddEnum(attrName, enumName, uint32(val))
}

func parseVendor(d *Dictionary, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("VENDOR requires 2 arguments, got %d", len(fields)-1)
	}
	idStr, name := fields[1], fields[2]
	id, err := strconv.ParseInt(idStr, 10, 32)
	if err != nil {
		return fmt.Errorf("VENDOR id %q: %w", idStr, err)
	}
	return d.AddVendor(int32(id), name)
}

func parseVendorAttr(d *Dictionary, fields []string) error {
	if len(fields) != 5 {
		return fmt.Errorf("VENDORATTR requires 4 arguments, got %d", len(fields)-1)
	}
	vidStr, name, codeStr, typeStr := fields[1], fields[2], fields[3], fields[4]
	vid, err := strconv.ParseInt(vidStr, 10, 32)
	if err != nil {
		return fmt.Errorf("VENDORATTR vendor-id %q: %w", vidStr, err)
	}
	code, err := strconv.ParseUint(codeStr, 10, 8)
	if err != nil {
		return fmt.Errorf("VENDORATTR code %q: %w", codeStr, err)
	}
	kind, ok := typeKind[strings.ToLower(typeStr)]
	if !ok {
		return fmt.Errorf("VENDORATTR unknown type %q", typeStr)
	}
	return d.AddAttribute(&Descriptor{
		Name:     name,
		TypeCode: byte(code),
		VendorID: int32(vid),
		Kind:     kind,
	})
}

func parseInclude(d *Dictionary, fields []string, dir string, fsys FileSystem) error {
	if len(fields) != 2 {
		return fmt.Errorf("$INCLUDE requires 1 argument, got %d", len(fields)-1)
	}
	if fsys == nil {
		return fmt.Errorf("$INCLUDE %s: no FileSystem supplied to resolve includes", fields[1])
	}
	path := fields[1]
	if dir != "" && !strings.HasPrefix(path, "/") {
		path = dir + "/" + path
	}
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("$INCLUDE %s: %w", path, err)
	}
	defer f.Close()
	incDir := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		incDir = path[:i]
	} else {
		incDir = ""
	}
	return Parse(d, f, incDir, fsys)
}
