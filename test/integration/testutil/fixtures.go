package testutil

import "postaladdr/pkg/model"

func USComponents() map[string]string {
	return map[string]string{
		"house_number": "123",
		"road":         "Main St",
		"unit":         "4B",
		"city":         "Springfield",
		"state":        "il",
		"postcode":     "62704",
		"country":      "us",
	}
}

func CanadianComponents() map[string]string {
	return map[string]string{
		"house_number": "5",
		"road":         "Rue X",
		"city":         "Montréal",
		"state":        "qc",
		"country":      "Canada",
	}
}

func ValidCreateRequest(source string) model.CreateAddressRequest {
	return model.CreateAddressRequest{
		NormalizeRequest: model.NormalizeRequest{Components: USComponents()},
		Source:           source,
	}
}
