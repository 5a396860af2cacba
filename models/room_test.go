package models_test

import (
	"testing"

	"boardinghouse-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoomTypeMaxCapacity(t *testing.T) {
	assert.Equal(t, 1, models.RoomTypeSingle.MaxCapacity())
	assert.Equal(t, 8, models.RoomTypeBedSpacer.MaxCapacity())
	assert.Equal(t, 0, models.RoomType("Penthouse").MaxCapacity())
}

func TestRoomValidate(t *testing.T) {
	cases := []struct {
		name    string
		room    models.Room
		wantErr bool
	}{
		{
			name: "valid single room",
			room: models.Room{Type: models.RoomTypeSingle, Capacity: 1, Price: decimal.NewFromInt(1500)},
		},
		{
			name: "valid bed spacer",
			room: models.Room{Type: models.RoomTypeBedSpacer, Capacity: 6, Price: decimal.NewFromInt(800)},
		},
		{
			name:    "single room cannot hold two",
			room:    models.Room{Type: models.RoomTypeSingle, Capacity: 2, Price: decimal.NewFromInt(1500)},
			wantErr: true,
		},
		{
			name:    "bed spacer capped at eight",
			room:    models.Room{Type: models.RoomTypeBedSpacer, Capacity: 9, Price: decimal.NewFromInt(800)},
			wantErr: true,
		},
		{
			name:    "capacity below one",
			room:    models.Room{Type: models.RoomTypeBedSpacer, Capacity: 0, Price: decimal.NewFromInt(800)},
			wantErr: true,
		},
		{
			name:    "unknown type",
			room:    models.Room{Type: "Suite", Capacity: 1, Price: decimal.NewFromInt(2000)},
			wantErr: true,
		},
		{
			name:    "negative price",
			room:    models.Room{Type: models.RoomTypeSingle, Capacity: 1, Price: decimal.NewFromInt(-100)},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.room.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
