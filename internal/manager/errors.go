package manager

import "errors"

// Ошибки менеджера.
var (
	// ErrNoBots — нет ботов для удаления.
	ErrNoBots = errors.New("no bot to remove")

	// ErrShutdown — менеджер завершает работу, операции не принимаются.
	ErrShutdown = errors.New("manager is shut down")
)
