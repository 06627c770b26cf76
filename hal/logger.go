package hal

// MultiLogger duplicates every line to all non-nil loggers.
func MultiLogger(loggers ...Logger) Logger {
	out := make(multiLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type multiLogger []Logger

func (m multiLogger) WriteLineString(s string) {
	for _, l := range m {
		l.WriteLineString(s)
	}
}

func (m multiLogger) WriteLineBytes(b []byte) {
	for _, l := range m {
		l.WriteLineBytes(b)
	}
}

// DiscardLogger drops every line.
var DiscardLogger Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}
