// Package uischema loads copy overrides for generated forms from YAML or JSON
// documents and applies them as a model decorator. Documents are keyed by
// operation id:
//
//	operations:
//	  registerUser:
//	    form:
//	      title: Create your account
//	      submitLabel: Sign up
//	    fields:
//	      password:
//	        helpText: At least <b>6</b> characters
package uischema
