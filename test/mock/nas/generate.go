package mock_nas

//go:generate -command mockgen go run go.uber.org/mock/mockgen -destination=./mocks.go github.com/geoprobe/geoprobe/nas
//go:generate mockgen DatasetFactory
