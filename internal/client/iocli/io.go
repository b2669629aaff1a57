package iocli

//go:generate moq -out io_mock.go . IO

// IO ввод-вывод интерактивного клиента
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput возвращает строку без пробелов по краям; io.EOF в конце ввода
	ReadInput(prompt string) (string, error)
	// Interactive сообщает, подключен ли ввод к терминалу
	Interactive() bool
	Write(p []byte) (n int, err error)
}
