/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/msgsystec/backoffice/cmd"

func main() {
	cmd.Execute()
}
