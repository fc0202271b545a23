package source

import "github.com/okian/recency/internal/domain/model"

// Sample returns the two demo streams used when no input file is configured.
func Sample() model.Streams {
	return model.Streams{
		0: {
			{Timestamp: 1, Payload: "Event1-1"},
			{Timestamp: 2, Payload: "Event1-2"},
			{Timestamp: 5, Payload: "Event1-3"},
			{Timestamp: 9, Payload: "Event1-4"},
			{Timestamp: 14, Payload: "Event1-5"},
		},
		1: {
			{Timestamp: 3, Payload: "Event2-1"},
			{Timestamp: 6, Payload: "Event2-2"},
			{Timestamp: 7, Payload: "Event2-3"},
			{Timestamp: 10, Payload: "Event2-4"},
			{Timestamp: 15, Payload: "Event2-5"},
		},
	}
}
