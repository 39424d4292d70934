package config

type WorkerKeyStruct struct {
	PersistHistoryQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistHistoryQueue: "persist_history_queue",
}
