// Tokenizer and grammar for the translation-file text format (component F)

package translate

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText converts the UTF-16 (BOM optional, defaulting to little-endian) source bytes to a
// UTF-8 Go string, per spec.md §6's bit-exact encoding requirement.
func decodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", newDiag(DK_ParseError, "", 0, "invalid UTF-16 source: %s", err)
	}
	return string(out), nil
}

// token is one whitespace- or quote-delimited unit within a line.
type token struct {
	text   string
	quoted bool
}

// parser walks a single translation-file text source, line by line, building a File. Includes
// are resolved through an optional cache or an optional base directory, per spec.md §4.F.
type parser struct {
	cache       *Cache
	baseDir     string
	logicalPath string

	lines   []string
	lineNum int //1-based, index into lines of the line most recently consumed

	file *File
}

func newParser(cache *Cache, baseDir, logicalPath string) *parser {
	return &parser{cache: cache, baseDir: baseDir, logicalPath: logicalPath, file: newFile()}
}

// parse runs the full grammar over data and returns the resulting File. Fatal errors (malformed
// variant lines, missing mandatory block structure) abort and return an error; everything else
// is collected into file.Diagnostics.
func (p *parser) parse(data []byte) (*File, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	p.lines = splitLines(text)

	for p.lineNum < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.lineNum])
		if line == "" {
			p.lineNum++
			continue
		}

		toks, err := tokenizeLine(line)
		if err != nil {
			return nil, p.fatal(err.Error())
		}
		if len(toks) == 0 {
			p.lineNum++
			continue
		}

		switch {
		case len(toks) == 1 && toks[0].quoted:
			//Decorative header line: ignored.
			p.lineNum++
		case toks[0].text == "include" && len(toks) == 2 && toks[1].quoted:
			p.handleInclude(toks[1].text)
			p.lineNum++
		case toks[0].text == "no_description" && len(toks) == 2:
			p.file.NoDescription[toks[1].text] = true
			p.lineNum++
		case toks[0].text == "description" && len(toks) == 1:
			p.lineNum++
			if err := p.parseDescriptionBlock(); err != nil {
				return nil, err
			}
		default:
			return nil, p.fatal("unrecognized top-level statement: %q", line)
		}
	}

	return p.file, nil
}

func (p *parser) fatal(format string, args ...interface{}) error {
	return newDiag(DK_ParseError, p.logicalPath, p.lineNum+1, format, args...)
}

func (p *parser) warn(kind DiagnosticKind, format string, args ...interface{}) {
	p.file.Diagnostics = append(p.file.Diagnostics, newDiag(kind, p.logicalPath, p.lineNum+1, format, args...))
}

// handleInclude resolves and merges an included file, per the (i) cache, (ii) base-dir,
// (iii) warn-and-skip resolution order in spec.md §4.F.
func (p *parser) handleInclude(path string) {
	if p.cache != nil {
		included, err := p.cache.Get(path)
		if err != nil {
			p.warn(DK_UnresolvedInclude, "could not resolve include %q via cache: %s", path, err)
			return
		}
		p.file.merge(included)
		return
	}
	if p.baseDir != "" {
		data, err := readIncludeFile(p.baseDir, path)
		if err != nil {
			p.warn(DK_UnresolvedInclude, "could not resolve include %q relative to base dir: %s", path, err)
			return
		}
		sub := newParser(nil, p.baseDir, path)
		included, err := sub.parse(data)
		if err != nil {
			p.warn(DK_UnresolvedInclude, "error parsing include %q: %s", path, err)
			return
		}
		p.file.Diagnostics = append(p.file.Diagnostics, included.Diagnostics...)
		p.file.merge(included)
		return
	}
	p.warn(DK_UnresolvedInclude, "include %q skipped: no cache or base directory configured", path)
}

// parseDescriptionBlock consumes the ids line and every following language section until the
// next top-level token or EOF.
func (p *parser) parseDescriptionBlock() error {
	idsLine, err := p.nextNonBlankLine()
	if err != nil {
		return p.fatal("description block missing ids line")
	}
	toks, err := tokenizeLine(idsLine)
	if err != nil {
		return p.fatal(err.Error())
	}
	if len(toks) < 1 || toks[0].quoted {
		return p.fatal("expected ids line (integer count followed by identifiers)")
	}
	declaredCount, err := strconv.Atoi(toks[0].text)
	if err != nil {
		return p.fatal("expected integer id count, got %q", toks[0].text)
	}
	ids := make([]string, 0, len(toks)-1)
	for _, t := range toks[1:] {
		if t.quoted {
			return p.fatal("id token %q must not be quoted", t.text)
		}
		ids = append(ids, t.text)
	}
	if declaredCount != len(ids) {
		p.warn(DK_CountMismatch, "ids line declares %d identifiers but %d were given", declaredCount, len(ids))
	}
	if len(ids) == 0 {
		return p.fatal("description block has no stat ids")
	}
	p.lineNum++ //consumed the ids line

	t := &Translation{Ids: ids}

	//Read language sections until a top-level token, blank remainder, or EOF.
	for {
		line, ok := p.peekNonBlankLine()
		if !ok {
			break
		}
		toks, err := tokenizeLine(line)
		if err != nil {
			return p.fatal(err.Error())
		}
		if len(toks) == 0 {
			break
		}

		langName := englishLanguageName
		if toks[0].text == "lang" && len(toks) == 2 && toks[1].quoted {
			langName = toks[1].text
			p.lineNum++ //consume the lang line (cursor is already on it after the peek above)
			countLine, ok := p.peekNonBlankLine()
			if !ok {
				return p.fatal("lang %q section missing variant count", langName)
			}
			countToks, err := tokenizeLine(countLine)
			if err != nil || len(countToks) != 1 || countToks[0].quoted {
				return p.fatal("expected variant count after lang %q", langName)
			}
			n, err := strconv.Atoi(countToks[0].text)
			if err != nil {
				return p.fatal("expected integer variant count, got %q", countToks[0].text)
			}
			p.lineNum++ //consume count line
			if err := p.parseLanguageSection(t, langName, n); err != nil {
				return err
			}
			continue
		}

		//Otherwise this must be a bare variant-count integer for an (implicit) English section,
		//or we have reached the next top-level token / end of this description block.
		if len(toks) == 1 && !toks[0].quoted {
			if n, err := strconv.Atoi(toks[0].text); err == nil {
				p.lineNum++ //consume the count line (cursor is already on it after the peek above)
				if err := p.parseLanguageSection(t, langName, n); err != nil {
					return err
				}
				continue
			}
		}

		//Not a language section header: end of this description block.
		break
	}

	if t.englishBundle() == nil {
		return p.fatal("description block for %v has no English section", t.Ids)
	}

	p.file.addTranslation(t)
	return nil
}

// parseLanguageSection reads n variant lines and attaches the resulting LanguageBundle to t. If
// a bundle for langName already exists (e.g. declared twice) the new variants are appended to
// it, matching the "ordered collection" model rather than silently dropping either.
func (p *parser) parseLanguageSection(t *Translation, langName string, n int) error {
	bundle := t.bundleByName(langName)
	if bundle == nil {
		bundle = &LanguageBundle{Name: langName}
		t.Languages = append(t.Languages, bundle)
	}

	for i := 0; i < n; i++ {
		line, ok := p.peekNonBlankLine()
		if !ok {
			return p.fatal("lang %q: expected %d variant lines, found %d", langName, n, i)
		}
		v, err := p.parseVariantLine(line, len(t.Ids))
		if err != nil {
			return err
		}
		p.lineNum++
		bundle.Variants = append(bundle.Variants, v)
	}
	return nil
}

// parseVariantLine parses "(range_token){arity} \"phrase\" (quant_name index)*".
func (p *parser) parseVariantLine(line string, arity int) (*Variant, error) {
	toks, err := tokenizeLine(line)
	if err != nil {
		return nil, p.fatal(err.Error())
	}
	if len(toks) < arity+1 {
		return nil, p.fatal("variant line has %d tokens, expected at least %d (arity %d + phrase)", len(toks), arity+1, arity)
	}

	ranges := make([]Range, arity)
	for i := 0; i < arity; i++ {
		if toks[i].quoted {
			return nil, p.fatal("expected range token at position %d, found quoted string", i+1)
		}
		r, err := parseRangeToken(toks[i].text)
		if err != nil {
			return nil, p.fatal("invalid range token %q: %s", toks[i].text, err)
		}
		ranges[i] = r
	}

	phraseTok := toks[arity]
	if !phraseTok.quoted {
		return nil, p.fatal("expected quoted phrase at position %d", arity+1)
	}

	v := &Variant{Template: phraseTok.text, Ranges: ranges}

	rest := toks[arity+1:]
	if len(rest)%2 != 0 {
		return nil, p.fatal("quantifier bindings must come in (name, index) pairs")
	}
	for i := 0; i < len(rest); i += 2 {
		nameTok, idxTok := rest[i], rest[i+1]
		if nameTok.quoted || idxTok.quoted {
			return nil, p.fatal("quantifier name/index must not be quoted")
		}
		idx, err := strconv.Atoi(idxTok.text)
		if err != nil {
			return nil, p.fatal("quantifier %q index must be an integer, got %q", nameTok.text, idxTok.text)
		}
		if !isKnownQuantifier(nameTok.text) {
			p.warn(DK_InvalidQuantifier, "unknown quantifier %q dropped", nameTok.text)
			continue
		}
		v.Quantifiers = appendBinding(v.Quantifiers, nameTok.text, idx)
	}

	return v, nil
}

func appendBinding(bindings []quantifierBinding, name string, idx int) []quantifierBinding {
	for i := range bindings {
		if bindings[i].name == name {
			bindings[i].indices = append(bindings[i].indices, idx)
			return bindings
		}
	}
	return append(bindings, quantifierBinding{name: name, indices: []int{idx}})
}

// parseRangeToken parses "#", an integer, or "lo|hi" (each side int or "#").
func parseRangeToken(tok string) (Range, error) {
	if tok == "#" {
		return Range{}, nil
	}
	if strings.Contains(tok, "|") {
		parts := strings.SplitN(tok, "|", 2)
		var min, max *int64
		if parts[0] != "#" {
			v, err := strconv.ParseInt(parts[0], 10, 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid lower bound %q", parts[0])
			}
			min = &v
		}
		if parts[1] != "#" {
			v, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid upper bound %q", parts[1])
			}
			max = &v
		}
		return newRange(min, max)
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("not a wildcard, integer, or lo|hi range")
	}
	return newRange(&v, &v)
}

// nextNonBlankLine advances past blank lines and returns the next non-blank one, consuming it.
func (p *parser) nextNonBlankLine() (string, error) {
	for p.lineNum < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.lineNum])
		if line == "" {
			p.lineNum++
			continue
		}
		return line, nil
	}
	return "", fmt.Errorf("unexpected end of file")
}

// peekNonBlankLine returns the next non-blank line without consuming it (skipping blanks in
// place so p.lineNum lands exactly on it for a subsequent consume).
func (p *parser) peekNonBlankLine() (string, bool) {
	for p.lineNum < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.lineNum])
		if line == "" {
			p.lineNum++
			continue
		}
		return line, true
	}
	return "", false
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// tokenizeLine splits a line into whitespace-separated tokens, with quoted strings (escape
// sequences \" and \\) treated as single tokens.
func tokenizeLine(line string) ([]token, error) {
	var toks []token
	i, n := 0, len(line)
	for i < n {
		for i < n && isSpace(line[i]) {
			i++
		}
		if i >= n {
			break
		}
		if line[i] == '"' {
			var sb strings.Builder
			i++
			closed := false
			for i < n {
				c := line[i]
				if c == '\\' && i+1 < n && (line[i+1] == '"' || line[i+1] == '\\') {
					sb.WriteByte(line[i+1])
					i += 2
					continue
				}
				if c == '"' {
					closed = true
					i++
					break
				}
				sb.WriteByte(c)
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quoted string")
			}
			toks = append(toks, token{text: sb.String(), quoted: true})
			continue
		}
		start := i
		for i < n && !isSpace(line[i]) {
			i++
		}
		toks = append(toks, token{text: line[start:i]})
	}
	return toks, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
