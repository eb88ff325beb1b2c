package html

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/gorilla/css/scanner"
)

// parseStyleRect extracts top, left, width and height from an inline style.
// Only unitless numbers and px lengths are understood; other declarations are skipped.
func parseStyleRect(style string) (domain.Rect, error) {
	var rect domain.Rect
	s := scanner.New(style)

	var property string
	negative := false
	inValue := false

	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return rect, nil
		case scanner.TokenError:
			return domain.Rect{}, fmt.Errorf("style %q: %s", style, tok.Value)
		case scanner.TokenIdent:
			if !inValue {
				property = strings.ToLower(tok.Value)
			}
		case scanner.TokenChar:
			switch tok.Value {
			case ":":
				inValue = true
				negative = false
			case ";":
				inValue = false
				property = ""
			case "-":
				negative = inValue
			}
		case scanner.TokenNumber, scanner.TokenDimension:
			if !inValue {
				continue
			}
			raw := strings.ToLower(tok.Value)
			if tok.Type == scanner.TokenDimension {
				if !strings.HasSuffix(raw, "px") {
					continue
				}
				raw = strings.TrimSuffix(raw, "px")
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return domain.Rect{}, fmt.Errorf("style %q: %w", style, err)
			}
			if negative {
				v = -v
			}
			switch property {
			case "top":
				rect.Top = v
			case "left":
				rect.Left = v
			case "width":
				rect.Width = v
			case "height":
				rect.Height = v
			}
		}
	}
}
