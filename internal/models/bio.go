package models

import "encoding/json"

// Profile fields in the order the prompt template consumes them.
const (
	FieldName       = "name"
	FieldAge        = "age"
	FieldGender     = "gender"
	FieldInterests  = "interests"
	FieldProfession = "profession"
)

var RequiredFields = []string{FieldName, FieldAge, FieldGender, FieldInterests, FieldProfession}

// /generate-bio 요청 바디
// Each field keeps its raw JSON value; age may arrive as a number or a string.
type BioRequest struct {
	Name       Attribute `json:"name" swaggertype:"string" example:"Ana"`
	Age        Attribute `json:"age" swaggertype:"string" example:"30"`
	Gender     Attribute `json:"gender" swaggertype:"string" example:"woman"`
	Interests  Attribute `json:"interests" swaggertype:"string" example:"hiking"`
	Profession Attribute `json:"profession" swaggertype:"string" example:"engineer"`
}

// BioRequestFromFields picks the profile fields out of a decoded JSON object.
// Keys are matched exactly; absent keys stay as zero Attributes.
func BioRequestFromFields(fields map[string]json.RawMessage) BioRequest {
	var req BioRequest

	targets := map[string]*Attribute{
		FieldName:       &req.Name,
		FieldAge:        &req.Age,
		FieldGender:     &req.Gender,
		FieldInterests:  &req.Interests,
		FieldProfession: &req.Profession,
	}
	for _, key := range RequiredFields {
		if raw, ok := fields[key]; ok {
			*targets[key] = NewAttribute(raw)
		}
	}
	return req
}

type BioResponse struct {
	Bio string `json:"bio" example:"My name is Ana.  I am 30 years old.  I am a woman interested in hiking.  I work as a engineer.  I love the mountains"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"No input data provided"`
}
