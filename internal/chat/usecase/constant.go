package usecase

const (
	defaultTemperature = 0.7
	minTemperature     = 0.1
	maxTemperature     = 1.0
)
