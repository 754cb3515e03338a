package models

// ProgressSample is the latest parsed progress of a running download.
type ProgressSample struct {
	Percent float64
	Status  string
}
