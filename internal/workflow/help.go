package workflow

// HelpText is the assistant's usage guide.
const HelpText = `Copilot Assistant Help

1. Write a request in natural language:
   - "Create a parametric bracket"
   - "Add M6 threaded holes"
   - "Generate a 3-axis CAM setup"

2. Review the generated code:
   - Check the plan and notes
   - Use "Explain" to understand it better

3. Apply or modify:
   - Press "Apply" to run the code
   - Press "Reject" to try a different approach
   - Use "Fix & Retry" when execution fails

4. Iterate:
   - The code is undoable via the host's undo
   - Keep refining until you get the design you want

Tips:
- Include specific dimensions and parameters
- Reference existing features by name
- Use the selection to target specific geometry
- Check the error messages for quick fixes`
