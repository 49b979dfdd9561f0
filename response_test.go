package titanic_test

import (
	"testing"

	titanic "github.com/goliatone/titanic-api"
	"github.com/stretchr/testify/assert"
)

func TestSuccessResponsePromotesSingleValue(t *testing.T) {
	record := &titanic.Passenger{ID: 1, Name: "Moran, Mr. James"}

	res := titanic.SuccessResponse(record, "passenger found")

	assert.True(t, res.Success)
	assert.Equal(t, "passenger found", res.Message)
	assert.Len(t, res.Data, 1)
	assert.Equal(t, 1, res.Count)
}

func TestSuccessResponseCount(t *testing.T) {
	data := titanic.AsList([]*titanic.Passenger{{ID: 1}, {ID: 2}})

	res := titanic.SuccessResponseCount(data, "2 passengers", 50, map[string]any{"page": 1})

	assert.True(t, res.Success)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 50, res.Count)
	assert.Equal(t, 1, res.Metadata["page"])
}

func TestSuccessResponseCountDefaultsToDataLength(t *testing.T) {
	data := titanic.AsList([]*titanic.Passenger{{ID: 1}, {ID: 2}, {ID: 3}})

	res := titanic.SuccessResponseCount(data, "3 passengers", -1, nil)

	assert.Equal(t, 3, res.Count)
	assert.NotNil(t, res.Metadata)
}

func TestSuccessResponseNilData(t *testing.T) {
	res := titanic.SuccessResponseCount(nil, "deleted", 0, nil)

	assert.True(t, res.Success)
	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.Count)
}

func TestErrorResponse(t *testing.T) {
	res := titanic.ErrorResponse("something broke")

	assert.False(t, res.Success)
	assert.Equal(t, "something broke", res.Message)
	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.Count)
}
