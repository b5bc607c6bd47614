package post

import (
	"bufio"
	"io"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/value"
)

// delimiter opens and closes a YAML front-matter block.
const delimiter = "---"

// ParseFrontMatter splits a content document into its front-matter mapping
// and raw body.
//
// The first line must start with the delimiter; a document without one fails
// with a missing-front-matter error (there is no front-matter-optional
// mode). Every following line is accumulated until a line starting with the
// delimiter closes the block; hitting end of input first is an
// unexpected-end-of-file error carrying source. An empty input is also an
// unexpected end of file, distinguishing a truncated file from one that
// merely lacks metadata. The rest of the stream is returned as the body,
// unconsumed.
func ParseFrontMatter(r io.Reader, source string) (map[string]value.Value, string, error) {
	br := bufio.NewReader(r)

	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, "", errors.IO(err)
	}
	if first == "" {
		return nil, "", errors.UnexpectedEOF(source)
	}
	if !strings.HasPrefix(first, delimiter) {
		return nil, "", errors.New(errors.KindOther, "missing front matter")
	}

	var block strings.Builder
	for {
		line, err := br.ReadString('\n')
		if strings.HasPrefix(line, delimiter) {
			break
		}
		block.WriteString(line)
		if err == io.EOF {
			return nil, "", errors.UnexpectedEOF(source)
		}
		if err != nil {
			return nil, "", errors.IO(err)
		}
	}

	front, err := value.FromYAML([]byte(block.String()))
	if err != nil {
		return nil, "", err
	}
	mapping, ok := front.AsMap()
	if !ok {
		return nil, "", errors.New(errors.KindOther, "front matter is not a mapping")
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, "", errors.IO(err)
	}
	return mapping, string(body), nil
}
