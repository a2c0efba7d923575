package parser

import (
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/store"
)

// Table читает набор событий со страницы, где памятные дни сверстаны HTML-таблицей:
//
//	<table class="days">
//	  <tr><th>Name</th><th>Month</th><th>Weekday</th><th>Occurrence</th></tr>
//	  <tr><td>Ada Lovelace Day</td><td>October</td><td>Tuesday</td><td>second</td></tr>
//	</table>
//
// Строки, в которых не 4 ячейки, пропускаются.
type Table struct {
	Client    *http.Client
	URL       string
	UserAgent string
	Selector  string // CSS-селектор таблицы, по умолчанию "table.days".
}

func (t *Table) GetEvents() (store.Events, error) {
	dom, err := t.getPage()
	if err != nil {
		return nil, err
	}

	tables := dom.Find(t.selector())
	if tables.Length() == 0 {
		return nil, fmt.Errorf("parser/table no '%s' found at %s", t.selector(), t.URL)
	}

	var events store.Events
	tables.Find("tr").Each(func(i int, row *goquery.Selection) {
		ev, ok := parseRow(i, row)
		if ok {
			events = append(events, ev)
		}
	})
	log.Printf("[DEBUG] parser/table found %d events at %s", len(events), t.URL)

	return events, nil
}

func (t *Table) selector() string {
	if t.Selector != "" {
		return t.Selector
	}
	return "table.days"
}

func (t *Table) getPage() (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, t.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("parser/table cannot make request: %w", err)
	}

	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
	log.Printf("[DEBUG] parser/table request: URL=%s", t.URL)

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parser/table cannot GET days page: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] parser/table cannot close response: %+v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parser/table unexpected status %d", resp.StatusCode)
	}

	dom, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parser/table cannot parse html: %w", err)
	}
	return dom, nil
}

func parseRow(i int, row *goquery.Selection) (store.Event, bool) {
	tds := row.Find("td")
	if tds.Length() == 0 {
		// Заголовок из <th>.
		return store.Event{}, false
	}

	cells := make([]string, 0, 4)
	tds.Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, cleanText(td.Text()))
	})

	if isHeader(cells) {
		return store.Event{}, false
	}
	if len(cells) != 4 {
		log.Printf("[WARN] parser/table skipping row %d: expected 4 cells, found %d", i, len(cells))
		return store.Event{}, false
	}

	return store.Event{
		Name:       cells[0],
		Month:      cells[1],
		Weekday:    cells[2],
		Occurrence: cells[3],
	}, true
}
