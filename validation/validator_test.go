package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func strPtr(s string) *string { return &s }

func TestCreateCourseRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "minimal", body: `{"title":"Go"}`},
		{name: "all fields", body: `{"title":"Go","description":"d","totalEstimatedHours":12,"color":"#a1B2c3"}`},
		{name: "missing title", body: `{}`, wantField: "title"},
		{name: "title too long", body: `{"title":"` + strings.Repeat("x", 201) + `"}`, wantField: "title"},
		{name: "negative hours", body: `{"title":"Go","totalEstimatedHours":-1}`, wantField: "totalEstimatedHours"},
		{name: "bad color", body: `{"title":"Go","color":"green"}`, wantField: "color"},
		{name: "short color", body: `{"title":"Go","color":"#abc"}`, wantField: "color"},
		{name: "wrong type", body: `{"title":5}`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateCourseRequest
			err := Decode([]byte(tt.body), &req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			verrs := fieldErrors(t, err)
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.NotEmpty(t, verrs[0].Message)
		})
	}
}

func TestCreateModuleRequest(t *testing.T) {
	t.Run("zero estimated hours is allowed", func(t *testing.T) {
		var req CreateModuleRequest
		require.NoError(t, Decode([]byte(`{"courseId":"c1","title":"Intro","estimatedHours":0}`), &req))
		require.NotNil(t, req.EstimatedHours)
		assert.Equal(t, 0.0, *req.EstimatedHours)
	})

	t.Run("estimated hours required", func(t *testing.T) {
		var req CreateModuleRequest
		verrs := fieldErrors(t, Decode([]byte(`{"courseId":"c1","title":"Intro"}`), &req))
		assert.Equal(t, "estimatedHours", verrs[0].Field)
		assert.Equal(t, "estimatedHours is required", verrs[0].Message)
	})

	t.Run("unknown status", func(t *testing.T) {
		var req CreateModuleRequest
		verrs := fieldErrors(t, Decode([]byte(`{"courseId":"c1","title":"Intro","estimatedHours":1,"status":"DONE"}`), &req))
		assert.Equal(t, "status", verrs[0].Field)
		assert.Equal(t, "status must be one of: PLANNED, IN_PROGRESS, COMPLETED", verrs[0].Message)
	})

	t.Run("due date must be a date-time", func(t *testing.T) {
		var req CreateModuleRequest
		verrs := fieldErrors(t, Decode([]byte(`{"courseId":"c1","title":"Intro","estimatedHours":1,"dueDate":"next week"}`), &req))
		assert.Equal(t, "dueDate", verrs[0].Field)
	})

	t.Run("reports every failing field", func(t *testing.T) {
		var req CreateModuleRequest
		verrs := fieldErrors(t, Decode([]byte(`{"priority":"URGENT"}`), &req))
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field
		}
		assert.ElementsMatch(t, []string{"courseId", "title", "priority", "estimatedHours"}, fields)
	})
}

func TestUpdateModuleRequestNullableDates(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		var req UpdateModuleRequest
		require.NoError(t, Decode([]byte(`{"title":"x"}`), &req))
		assert.False(t, req.DueDate.Set)
	})

	t.Run("explicit null", func(t *testing.T) {
		var req UpdateModuleRequest
		require.NoError(t, Decode([]byte(`{"dueDate":null}`), &req))
		assert.True(t, req.DueDate.Set)
		assert.Nil(t, req.DueDate.Value)

		parsed, err := req.DueDate.Time()
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("value", func(t *testing.T) {
		var req UpdateModuleRequest
		require.NoError(t, Decode([]byte(`{"completedAt":"2024-05-01T10:00:00Z"}`), &req))
		parsed, err := req.CompletedAt.Time()
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, 2024, parsed.Year())
	})

	t.Run("invalid value", func(t *testing.T) {
		var req UpdateModuleRequest
		verrs := fieldErrors(t, Decode([]byte(`{"completedAt":"yesterday"}`), &req))
		assert.Equal(t, "completedAt", verrs[0].Field)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		req := UpdateModuleRequest{Title: strPtr("")}
		verrs := fieldErrors(t, Struct(&req))
		assert.Equal(t, "title", verrs[0].Field)
	})
}

func TestDecodeRejectsNullOptionalFields(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		dst   interface{}
		field string
	}{
		{name: "module notes", body: `{"notes":null}`, dst: &UpdateModuleRequest{}, field: "notes"},
		{name: "module actual hours", body: `{"title":"x","actualHours": null }`, dst: &UpdateModuleRequest{}, field: "actualHours"},
		{name: "course description", body: `{"description":null}`, dst: &UpdateCourseRequest{}, field: "description"},
		{name: "flashcard difficulty", body: `{"difficulty":null}`, dst: &UpdateFlashcardRequest{}, field: "difficulty"},
		{name: "generate count", body: `{"moduleId":"m1","count":null}`, dst: &GenerateFlashcardsRequest{}, field: "count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verrs := fieldErrors(t, Decode([]byte(tt.body), tt.dst))
			require.Len(t, verrs, 1)
			assert.Equal(t, FieldError{Field: tt.field, Message: tt.field + " must not be null"}, verrs[0])
		})
	}

	var req UpdateModuleRequest
	require.NoError(t, Decode([]byte(`{"notes":"keep me","dueDate":null}`), &req))
	assert.Equal(t, "keep me", *req.Notes)
}

func TestFlashcardRequests(t *testing.T) {
	var create CreateFlashcardRequest
	require.NoError(t, Decode([]byte(`{"moduleId":"m1","question":"Q?","answer":"A"}`), &create))
	assert.Nil(t, create.Difficulty)

	verrs := fieldErrors(t, Decode([]byte(`{"moduleId":"m1","question":"Q?","answer":"`+strings.Repeat("a", 2001)+`"}`), &CreateFlashcardRequest{}))
	assert.Equal(t, "answer", verrs[0].Field)
	assert.Equal(t, "answer must be at most 2000 characters", verrs[0].Message)

	verrs = fieldErrors(t, Struct(&UpdateFlashcardRequest{Difficulty: strPtr("IMPOSSIBLE")}))
	assert.Equal(t, "difficulty", verrs[0].Field)
}

func TestGenerateFlashcardsRequest(t *testing.T) {
	var req GenerateFlashcardsRequest
	require.NoError(t, Decode([]byte(`{"moduleId":"m1"}`), &req))
	assert.Equal(t, 5, req.CountOrDefault())

	require.NoError(t, Decode([]byte(`{"moduleId":"m1","count":20}`), &req))
	assert.Equal(t, 20, req.CountOrDefault())

	for _, body := range []string{`{"moduleId":"m1","count":0}`, `{"moduleId":"m1","count":21}`} {
		verrs := fieldErrors(t, Decode([]byte(body), &GenerateFlashcardsRequest{}))
		assert.Equal(t, "count", verrs[0].Field, body)
	}
}

func TestRegisterRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       RegisterRequest
		wantField string
	}{
		{name: "valid", req: RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "Password123"}},
		{name: "no uppercase", req: RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "password123"}, wantField: "password"},
		{name: "no lowercase", req: RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "PASSWORD123"}, wantField: "password"},
		{name: "no digit", req: RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "PasswordABC"}, wantField: "password"},
		{name: "too short", req: RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "Pass1"}, wantField: "password"},
		{name: "short name", req: RegisterRequest{Name: "J", Email: "john@example.com", Password: "Password123"}, wantField: "name"},
		{name: "bad email", req: RegisterRequest{Name: "John Doe", Email: "john", Password: "Password123"}, wantField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			verrs := fieldErrors(t, err)
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestRegisterRequestNormalize(t *testing.T) {
	req := RegisterRequest{Name: "  Ada  ", Email: " Ada@Example.COM "}
	req.Normalize()
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, "ada@example.com", req.Email)
}

func TestLoginRequest(t *testing.T) {
	assert.NoError(t, Struct(&LoginRequest{Email: "test@example.com", Password: "password123"}))

	verrs := fieldErrors(t, Struct(&LoginRequest{Email: "invalid-email", Password: "password123"}))
	assert.Equal(t, "email", verrs[0].Field)

	verrs = fieldErrors(t, Struct(&LoginRequest{Email: "test@example.com", Password: "12345"}))
	assert.Equal(t, "password", verrs[0].Field)
}

func TestErrorsMessage(t *testing.T) {
	err := Errors{{Field: "title", Message: "title is required"}, {Field: "color", Message: "bad"}}
	assert.Equal(t, "title: title is required; color: bad", err.Error())
}
