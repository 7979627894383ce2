package services

// ChangeNotifier is how services announce that a table changed; the ws
// hub implements it. Subscribers refetch, nothing is diffed.
type ChangeNotifier interface {
	Notify(table string)
}

// NopNotifier is used in tests and before the hub is wired.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}
