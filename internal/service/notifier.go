package service

// CatalogNotifier receives catalog change events for live admin dashboards.
// Implemented by the websocket hub; services tolerate a nil notifier.
type CatalogNotifier interface {
	NotifyCatalogEvent(event string, payload interface{})
}

func notify(n CatalogNotifier, event string, payload interface{}) {
	if n != nil {
		n.NotifyCatalogEvent(event, payload)
	}
}
