package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	RunOnce() error
	Fatal() <-chan error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
