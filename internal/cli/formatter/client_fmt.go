package formatter

import "github.com/alexanderramin/cadence/internal/domain"

func FormatClients(clients []*domain.Client) string {
	if len(clients) == 0 {
		return Dim("No clients.") + "\n"
	}
	t := Table{Headers: []string{"ID", "NAME", "EMAIL"}}
	for _, c := range clients {
		t.AddRow(TruncID(c.ID), Bold(c.Name), c.Email)
	}
	return t.String()
}
