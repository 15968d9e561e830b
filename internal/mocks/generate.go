// Package mocks provides gomock implementations of the core repository ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	jobs := mocks.NewMockJobRepository(ctrl)
//	jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_repository_mock.go github.com/target/jobmarket-api/internal/core JobRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=employer_repository_mock.go github.com/target/jobmarket-api/internal/core EmployerRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=employee_repository_mock.go github.com/target/jobmarket-api/internal/core EmployeeRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=interest_repository_mock.go github.com/target/jobmarket-api/internal/core InterestRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=audit_repository_mock.go github.com/target/jobmarket-api/internal/core AuditRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/target/jobmarket-api/internal/core CacheRepository
