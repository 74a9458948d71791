// Package dtmi implements Digital Twin Model Identifiers.
//
// A DTMI has the form
//
//	dtmi:<segment>:<segment>[:<segment>...];<version>
//
// where every segment starts with a letter, contains only letters, digits and
// underscores, and does not end with an underscore.  The version is a positive
// integer of at most nine digits without leading zeros.  Identifiers are case
// sensitive.
//
// Identifiers map onto repository paths by lowercasing them, replacing segment
// delimiters with solidi and the version delimiter with a hyphen:
//
//	dtmi:com:example:Thermostat;1  ->  dtmi/com/example/thermostat-1.json
package dtmi
