package storage

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name TaskRepository --structname MockTaskRepository --filename mocks.go
