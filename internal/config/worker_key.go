package config

type WorkerKeyStruct struct {
	SubmissionCountQueue string
}

var WorkerKey = &WorkerKeyStruct{
	SubmissionCountQueue: "submission_count_queue",
}
