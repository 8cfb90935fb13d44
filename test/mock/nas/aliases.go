package mock_nas

import (
	nas "github.com/geoprobe/geoprobe/nas"
)

type (
	DatasetFactory = nas.DatasetFactory
)
