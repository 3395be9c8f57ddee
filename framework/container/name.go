package container

import (
	"reflect"
	"strings"
	"unicode"
)

// Separator joins the segments of a canonical type identifier.
const Separator = '.'

// Normalize canonicalizes a raw type identifier.
//
// The result is lowercase, uses '.' between segments, carries exactly one
// leading '.' and no trailing one. Backslashes and slashes are accepted as
// separators and a leading pointer marker is dropped, so all of these name
// the same type:
//
//	container.Normalize(`\App\Mail\Mailer`)      // ".app.mail.mailer"
//	container.Normalize("app/mail.Mailer")       // ".app.mail.mailer"
//	container.Normalize("*app.mail.mailer.")     // ".app.mail.mailer"
//
// Blank input yields "". Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.TrimLeft(strings.TrimSpace(raw), "*")
	s = strings.Map(func(r rune) rune {
		if r == '\\' || r == '/' {
			return Separator
		}
		return unicode.ToLower(r)
	}, s)

	segments := strings.FieldsFunc(s, func(r rune) bool { return r == Separator })
	if len(segments) == 0 {
		return ""
	}
	return string(Separator) + strings.Join(segments, string(Separator))
}

// TypeKey returns the canonical identifier of v's type, useful as a stable
// key when registering Go types and the interfaces they satisfy.
//
//	key := container.TypeKey((*Mailer)(nil))  // ".example.com.app.mailer"
func TypeKey(v any) string {
	return typeKey(reflect.TypeOf(v))
}

// KeyOf is the generic form of TypeKey and also works for interface types.
//
//	container.KeyOf[io.Writer]()   // ".io.writer"
func KeyOf[T any]() string {
	return typeKey(reflect.TypeOf((*T)(nil)).Elem())
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return Normalize(t.String())
	}
	if t.PkgPath() == "" {
		return Normalize(t.Name())
	}
	return Normalize(t.PkgPath() + "." + t.Name())
}
