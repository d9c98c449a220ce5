package ast

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// FromJson decodes the parser's JSON output into a SourceFile. Node kinds in the
// JSON are told apart by which wrapper key is present; this is the only place
// where that happens.
func FromJson(data []byte) (SourceFile, error) {
	file, _, _, err := jsonparser.Get(data, "SourceFile")
	if err != nil {
		return SourceFile{}, fmt.Errorf("missing 'SourceFile': %w", err)
	}
	statements, err := parseStatementList(file)
	if err != nil {
		return SourceFile{}, err
	}
	pos, err := parsePos(file, "pos")
	if err != nil {
		return SourceFile{}, err
	}
	return SourceFile{Statements: statements, Pos: pos}, nil
}

func parseStatementList(data []byte) ([]Statement, error) {
	ret := make([]Statement, 0)
	var errs []error
	_, err := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		s, err := parseStatement(value)
		if err != nil {
			errs = append(errs, err)
			return
		}
		ret = append(ret, s)
	}, "StatementList")
	if err != nil {
		return nil, fmt.Errorf("invalid 'StatementList': %w", err)
	}
	if len(errs) != 0 {
		return nil, errs[0]
	}
	return ret, nil
}

func parseStatement(data []byte) (Statement, error) {
	if inner, ok := field(data, "VariableDeclaration"); ok {
		return parseVariableDeclaration(inner)
	}
	if inner, ok := field(data, "FunctionDeclaration"); ok {
		return parseFunctionDeclaration(inner)
	}
	return nil, fmt.Errorf("unknown statement: %s", data)
}

func parseVariableDeclaration(data []byte) (*VariableDeclaration, error) {
	name, err := source(data, "VariableName")
	if err != nil {
		return nil, err
	}
	value, _, _, err := jsonparser.Get(data, "VariableValue")
	if err != nil {
		return nil, fmt.Errorf("variable declaration '%s' has no value: %w", name, err)
	}
	var init Initializer
	if inner, ok := field(value, "Literal"); ok {
		lexeme, err := jsonparser.GetString(inner, "source")
		if err != nil {
			return nil, fmt.Errorf("invalid literal for '%s': %w", name, err)
		}
		init = &Literal{Lexeme: lexeme}
	} else if inner, ok := field(value, "CallExpression"); ok {
		callee, err := source(inner, "FunctionName")
		if err != nil {
			return nil, err
		}
		argument, err := source(inner, "FunctionArgument")
		if err != nil {
			return nil, err
		}
		init = &CallExpression{Callee: callee, Argument: argument}
	} else {
		return nil, fmt.Errorf("unknown value for variable '%s': %s", name, value)
	}
	pos, err := parsePos(data, "offset", "pos")
	if err != nil {
		return nil, err
	}
	return &VariableDeclaration{Name: name, Value: init, Pos: pos}, nil
}

func parseFunctionDeclaration(data []byte) (*FunctionDeclaration, error) {
	name, err := source(data, "FunctionName")
	if err != nil {
		return nil, err
	}
	parameter, err := source(data, "FunctionParameter")
	if err != nil {
		return nil, err
	}
	body, _, _, err := jsonparser.Get(data, "FunctionBody")
	if err != nil {
		return nil, fmt.Errorf("function '%s' has no body: %w", name, err)
	}
	statements, err := parseStatementList(body)
	if err != nil {
		return nil, err
	}
	rv, _, _, err := jsonparser.Get(body, "ReturnStatement", "ReturnValue")
	if err != nil {
		return nil, fmt.Errorf("function '%s' has no return value: %w", name, err)
	}
	var ret ReturnExpression
	if inner, ok := field(rv, "Literal"); ok {
		ident, err := jsonparser.GetString(inner, "source")
		if err != nil {
			return nil, fmt.Errorf("invalid return value in '%s': %w", name, err)
		}
		ret = &Identifier{Name: ident}
	} else if inner, ok := field(rv, "PlusExpression"); ok {
		left, err := source(inner, "Left")
		if err != nil {
			return nil, err
		}
		right, err := source(inner, "Right")
		if err != nil {
			return nil, err
		}
		ret = &Addition{Left: left, Right: right}
	} else {
		return nil, fmt.Errorf("unknown return value in '%s': %s", name, rv)
	}
	pos, err := parsePos(data, "offset", "pos")
	if err != nil {
		return nil, err
	}
	return &FunctionDeclaration{
		Name:      name,
		Parameter: parameter,
		Body:      FunctionBody{Statements: statements, Return: ret},
		Pos:       pos,
	}, nil
}

func field(data []byte, key string) ([]byte, bool) {
	v, vt, _, err := jsonparser.Get(data, key)
	if err != nil || vt == jsonparser.Null {
		return nil, false
	}
	return v, true
}

// source reads a token's text, which the parser stores as {"source": "..."}.
func source(data []byte, key string) (string, error) {
	s, err := jsonparser.GetString(data, key, "source")
	if err != nil {
		return "", fmt.Errorf("invalid token '%s': %w", key, err)
	}
	return s, nil
}

// parsePos returns 0 when the position is absent.
func parsePos(data []byte, keys ...string) (int, error) {
	pos, err := jsonparser.GetInt(data, keys...)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("invalid position: %w", err)
	}
	return int(pos), nil
}
