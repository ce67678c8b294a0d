package memory_test

import (
	"testing"

	"github.com/Shadowrithik/Modify-data2/internal/storage"
	"github.com/Shadowrithik/Modify-data2/internal/storage/memory"
	"github.com/Shadowrithik/Modify-data2/internal/storage/storagetest"
)

func TestMemory(t *testing.T) {
	storagetest.Run(t, func(*testing.T) storage.Storage {
		return memory.New()
	}, "6f1c7a0e-3d2b-4c55-9a8e-0b7f4e2d1a90")
}
