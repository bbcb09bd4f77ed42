package request

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterBodyIntersection(t *testing.T) {
	body := map[string]interface{}{
		"name":     "kitchen remodel",
		"status":   "active",
		"user_id":  99,
		"is_admin": true,
	}
	got := FilterBody(body, []string{"name", "status", "client_id"})
	require.Equal(t, map[string]interface{}{
		"name":   "kitchen remodel",
		"status": "active",
	}, got)
}

func TestFilterBodyNeverInventsKeys(t *testing.T) {
	got := FilterBody(map[string]interface{}{}, []string{"name", "status"})
	require.Empty(t, got)
}

func TestRequireValuesMissingKey(t *testing.T) {
	err := RequireValues(map[string]interface{}{"name": "x"}, []string{"name", "status"})
	require.Error(t, err)
	require.Equal(t, "missing required value: 'status'", err.Error())

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 400, verr.Status)
}

func TestRequireValuesEmptyStringCountsAsMissing(t *testing.T) {
	err := RequireValues(map[string]interface{}{"name": ""}, []string{"name"})
	require.Error(t, err)
	require.Equal(t, "missing required value: 'name'", err.Error())
}

func TestRequireValuesNilCountsAsMissing(t *testing.T) {
	err := RequireValues(map[string]interface{}{"name": nil}, []string{"name"})
	require.Error(t, err)
	require.Equal(t, "missing required value: 'name'", err.Error())
}

func TestRequireValuesReportsFirstMissing(t *testing.T) {
	err := RequireValues(map[string]interface{}{}, []string{"a", "b"})
	require.Equal(t, "missing required value: 'a'", err.Error())
}

func TestRequireValuesAllPresent(t *testing.T) {
	err := RequireValues(map[string]interface{}{"name": "x", "hours": 4.0}, []string{"name", "hours"})
	require.NoError(t, err)
}

func TestSchemaCheckPicksAndValidates(t *testing.T) {
	s := Schema{"quantity": Number, "name": String, "start": Date}
	body := map[string]interface{}{
		"quantity": 12.0,
		"name":     "drywall",
		"start":    "02-28-2019",
		"ignored":  "dropped",
	}
	got, err := s.Check(body)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.NotContains(t, got, "ignored")
}

func TestSchemaCheckNumericString(t *testing.T) {
	s := Schema{"quantity": Number}
	_, err := s.Check(map[string]interface{}{"quantity": "42"})
	require.NoError(t, err)
}

func TestSchemaCheckWrongType(t *testing.T) {
	s := Schema{"quantity": Number}
	_, err := s.Check(map[string]interface{}{"quantity": "not a number"})
	require.Error(t, err)
	require.Equal(t, "wrong data type for: 'quantity'", err.Error())
}

func TestSchemaCheckBadDate(t *testing.T) {
	s := Schema{"start": Date}
	_, err := s.Check(map[string]interface{}{"start": "2019-02-28"})
	require.Error(t, err)
	require.Equal(t, "wrong data type for: 'start'", err.Error())
}

func TestSchemaCheckMissingFieldFailsRequired(t *testing.T) {
	s := Schema{"name": String}
	_, err := s.Check(map[string]interface{}{})
	require.Error(t, err)
	require.Equal(t, "missing required value: 'name'", err.Error())
}
