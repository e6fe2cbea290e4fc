// Package shoppinglist renders an aggregated shopping cart as a plain text document.
package shoppinglist

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tair/foodgram/internal/recipe/domain"
)

const (
	ContentType = "text/plain; charset=utf-8"

	recipesHeading = "You will need these products for the following recipes:"
	signature      = "Bon appétit, your Foodgram!"
)

// List is everything needed to render one shopping list
type List struct {
	UserID      uint
	FirstName   string
	LastName    string
	GeneratedAt time.Time
	Lines       []domain.ShoppingLine
	Recipes     []string
}

// Render produces the document body
func (l *List) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for %s %s from %s\n",
		l.FirstName, l.LastName, l.GeneratedAt.Format("02.01.2006 15:04"))

	for i, line := range l.Lines {
		fmt.Fprintf(&b, "%d. %s - %d %s\n", i+1, capitalize(line.Name), line.Amount, line.MeasurementUnit)
	}

	b.WriteString(recipesHeading)
	for _, name := range l.Recipes {
		b.WriteString("\n· ")
		b.WriteString(name)
	}
	b.WriteString("\n\n")
	b.WriteString(signature)
	return b.String()
}

// Filename is the attachment name offered to the client
func (l *List) Filename() string {
	return "shopping_list_" + strconv.FormatUint(uint64(l.UserID), 10) + "_" +
		l.GeneratedAt.Format("02-01-2006_15_04_05") + ".txt"
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
