package report

import (
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const displayKey = "%d warnings found"

var (
	catalogOnce sync.Once
	displayCat  catalog.Catalog
)

func displayCatalog() catalog.Catalog {
	catalogOnce.Do(func() {
		b := catalog.NewBuilder()
		// ошибка возможна только при некорректном шаблоне
		if err := b.Set(language.English, displayKey,
			plural.Selectf(1, "%d",
				"=1", "1 warning found",
				"other", "%d warnings found",
			)); err != nil {
			panic(err)
		}
		displayCat = b
	})
	return displayCat
}

// DisplayValue renders the finding count: the singular form for exactly
// one, the plural form showing the count for anything else.
func DisplayValue(count int) string {
	p := message.NewPrinter(language.English, message.Catalog(displayCatalog()))
	return p.Sprintf(displayKey, count)
}
