package driver

// Stage describes a per-file tokenization phase.
type Stage string

const (
	// StageLoad is reading the file into the FileSet.
	StageLoad Stage = "load"
	// StageLex is scanning the file.
	StageLex Stage = "lex"
	// StageCache is a cache lookup or store.
	StageCache Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file was tokenized without errors.
	StatusDone Status = "done"
	// StatusError indicates the file had lexical or I/O errors.
	StatusError Status = "error"
)

// ProgressEvent reports progress of one file (File != "") or of the whole run.
type ProgressEvent struct {
	File   string
	Stage  Stage
	Status Status
	Cached bool
}

// ProgressSink receives progress events. Implementations must be goroutine-safe.
type ProgressSink interface {
	OnEvent(ProgressEvent)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- ProgressEvent
}

func (s ChannelSink) OnEvent(evt ProgressEvent) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emitProgress(sink ProgressSink, evt ProgressEvent) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
